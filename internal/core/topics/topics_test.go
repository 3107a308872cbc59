package topics

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("Let's grab COFFEE at 10am! https://x.io/y www.z.com café-bar")
	want := []string{"let's", "grab", "coffee", "café", "bar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTop_RanksAndFilters(t *testing.T) {
	c := NewCounter()
	c.Add("coffee tomorrow? coffee sounds great")
	c.Add("The movie was great, coffee after the movie")
	c.Add("<Media omitted>")
	got := c.Top(3)
	want := []Term{{"coffee", 3}, {"great", 2}, {"movie", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Top = %v, want %v", got, want)
	}
}

func TestTop_Deterministic(t *testing.T) {
	bodies := []string{"zeta alpha", "beta gamma", "delta"}
	first := Of(bodies, 5)
	for i := 0; i < 20; i++ {
		if got := Of(bodies, 5); !reflect.DeepEqual(got, first) {
			t.Fatalf("non-deterministic ranking %v vs %v", got, first)
		}
	}
	if first[0] != "alpha" {
		t.Fatalf("tie break should be alphabetical, got %v", first)
	}
}

func TestCounter_ExtraStopwords(t *testing.T) {
	c := NewCounter("Pizza")
	c.Add("pizza pizza pasta")
	if got := c.TopTokens(5); !reflect.DeepEqual(got, []string{"pasta"}) {
		t.Fatalf("got %v", got)
	}
}

func TestOf_Empty(t *testing.T) {
	if got := Of(nil, 5); len(got) != 0 {
		t.Fatalf("want empty, got %v", got)
	}
}
