package domain

// JokeTemplate holds the language-specific boilerplate of a joke.
//
// Rendered layout:
//
//	{Salutation}
//	{Response}
//	{firstname}.
//	{firstname} {Who}?
//	{firstname} {surname}!
type JokeTemplate struct {
	Salutation string
	Response   string
	Who        string
}

// EnglishTemplate is the classic layout.
func EnglishTemplate() JokeTemplate {
	return JokeTemplate{
		Salutation: "Knock, knock!",
		Response:   "Who's there?",
		Who:        "who",
	}
}

// FinnishTemplate is the Finnish layout.
func FinnishTemplate() JokeTemplate {
	return JokeTemplate{
		Salutation: "Kop, kop!",
		Response:   "Kuka siellä?",
		Who:        "kuka",
	}
}

// Joke is a rendered joke. It is never mutated after composition.
type Joke struct {
	Variant   string
	FirstName string
	Surname   string
	Text      string
}

func (j Joke) String() string { return j.Text }
