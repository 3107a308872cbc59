package topics

import "strings"

// exporter placeholders and chat filler count as stopwords too
const stopwordList = `
a about above after again against all also am an and any are aren't as at be because been before
being below between both but by can can't cannot could couldn't did didn't do does doesn't doing
don't down during each few for from further get got had hadn't has hasn't have haven't having he
he'd he'll he's her here here's hers herself him himself his how how's i i'd i'll i'm i've if in
into is isn't it it's its itself just let's like me more most mustn't my myself no nor not now of
off on once only or other ought our ours ourselves out over own really same shan't she she'd
she'll she's should shouldn't so some such than that that's the their theirs them themselves then
there there's these they they'd they'll they're they've this those through to too under until up
very was wasn't we we'd we'll we're we've were weren't what what's when when's where where's which
while who who's whom why why's will with won't would wouldn't yeah yes yet you you'd you'll you're
you've your yours yourself yourselves okay haha hahaha lol lmao omg gonna wanna gotta thanks thank
well one too much still even going know think want need see good right

omitted image video audio sticker gif document media message deleted edited null

algo como con contra cual cuando de del desde donde dos el ella ellas ellos en entre era eran es esa
esas ese eso esos esta estaba estado estamos estan estar este esto estos estoy fue fueron hay hace
hasta la las le les lo los mas me mi mis mucho muy nada ni no nos nosotros otra otro para pero poco
por porque que quien se sea ser si sin sobre solo son su sus también tambien te tengo tiene todo
todos tu tus un una uno unos usted vamos ya yo jaja jajaja jeje bueno pues vale
`

var defaultStopwords = func() map[string]struct{} {
	fields := strings.Fields(stopwordList)
	m := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		m[w] = struct{}{}
	}
	return m
}()
