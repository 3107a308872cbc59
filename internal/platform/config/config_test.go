package config

import (
	"reflect"
	"testing"
	"time"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("CORE_").Prefix("API_")
	if got := api.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q, want CORE_API_PORT", got)
	}
	if got := New().key("LOG_LEVEL"); got != "LOG_LEVEL" {
		t.Fatalf("root key() = %q", got)
	}
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("CORE_ANALYSIS_")
	t.Setenv("CORE_ANALYSIS_NAME", " chatlens ")
	t.Setenv("CORE_ANALYSIS_BLANK", "   ")
	t.Setenv("CORE_ANALYSIS_CHUNK_SIZE", " 250 ")
	t.Setenv("CORE_ANALYSIS_THRESHOLD", "21474836480")
	t.Setenv("CORE_ANALYSIS_WEIGHT", "0.35")
	t.Setenv("CORE_ANALYSIS_WORD_BOUNDARY", "true")
	t.Setenv("CORE_ANALYSIS_TIMEOUT", "150ms")
	t.Setenv("CORE_ANALYSIS_BAD", "nope")

	if got := c.MayString("NAME", "x"); got != "chatlens" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("BLANK", "def"); got != "def" {
		t.Fatalf("whitespace should count as unset, got %q", got)
	}
	if got := c.MayInt("CHUNK_SIZE", 1000); got != 250 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt64("THRESHOLD", 0); got != 20<<30 {
		t.Fatalf("MayInt64 = %d", got)
	}
	if got := c.MayFloat64("WEIGHT", 0); got != 0.35 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if !c.MayBool("WORD_BOUNDARY", false) {
		t.Fatalf("MayBool = false")
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}

	// invalid values fall back to the default
	if c.MayInt("BAD", 3) != 3 || c.MayInt64("BAD", 4) != 4 || c.MayFloat64("BAD", 0.5) != 0.5 ||
		c.MayBool("BAD", true) != true || c.MayDuration("BAD", time.Minute) != time.Minute {
		t.Fatalf("invalid values must fall back to defaults")
	}
	// missing values too
	if c.MayInt("MISSING", 9) != 9 || c.MayDuration("MISSING", 5*time.Second) != 5*time.Second {
		t.Fatalf("missing values must fall back to defaults")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"a", "b"}
	cases := []struct {
		env  string
		want []string
	}{
		{"", def},
		{" one, two , ,three ,, ", []string{"one", "two", "three"}},
		{" , ,  ,", def},
	}
	for _, tc := range cases {
		t.Setenv("CSV_VALS", tc.env)
		if got := c.MayCSV("VALS", def); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("MayCSV(%q) = %#v, want %#v", tc.env, got, tc.want)
		}
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	if got := c.MayEnum("MISS", "json", "json", "markdown"); got != "json" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("E_FMT", "Markdown")
	if got := c.MayEnum("FMT", "json", "json", "markdown"); got != "markdown" {
		t.Fatalf("allowed value = %q", got)
	}
	t.Setenv("E_BAD", "xml")
	if got := c.MayEnum("BAD", "json", "json", "markdown"); got != "json" {
		t.Fatalf("invalid value should fall back, got %q", got)
	}
}
