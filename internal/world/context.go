package world

import (
	_ "embed"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

//go:embed pools/book_titles.txt
var bookTitleData string

//go:embed pools/colors.txt
var colorData string

//go:embed pools/foods.txt
var foodData string

//go:embed pools/names.txt
var nameData string

var kitchenwareNames = []string{"plate", "bowl", "fork", "spoon", "knife"}

// Context is the per-run generation context: the random source, the finite
// name pools consumed during instantiation, and the once-only flags for
// singleton kinds. A fresh Context is created for every run so no state leaks
// between generations.
type Context struct {
	rng *rand.Rand

	bookTitles  []string
	penColors   []string
	foodNames   []string
	kitchenware []string
	phoneOwners []string
	roomOwners  []string

	glassMade      bool
	kitchenMade    bool
	livingRoomMade bool

	tokens map[string]struct{}
}

// NewContext builds a context around the given random source. Phone owners
// and bedroom owners draw from independent copies of the same name pool, so
// the same person may own both a phone and a bedroom.
func NewContext(rng *rand.Rand) *Context {
	return &Context{
		rng:         rng,
		bookTitles:  splitPool(bookTitleData, false),
		penColors:   splitPool(colorData, true),
		foodNames:   splitPool(foodData, true),
		kitchenware: append([]string(nil), kitchenwareNames...),
		phoneOwners: splitPool(nameData, false),
		roomOwners:  splitPool(nameData, false),
		tokens:      make(map[string]struct{}),
	}
}

// Rand exposes the run's random source.
func (c *Context) Rand() *rand.Rand { return c.rng }

func (c *Context) coin() bool     { return c.rng.Intn(2) == 0 }
func (c *Context) intn(n int) int { return c.rng.Intn(n) }

// draw removes and returns a uniformly random entry from the pool. The second
// result is false once the pool is exhausted; exhaustion is not an error, it
// caps how many instances of a kind exist.
func (c *Context) draw(pool *[]string) (string, bool) {
	p := *pool
	if len(p) == 0 {
		return "", false
	}
	i := c.rng.Intn(len(p))
	name := p[i]
	*pool = append(p[:i], p[i+1:]...)
	return name, true
}

// claim registers an entity token for the run. Tokens must be globally
// unique; a duplicate is a programming-contract violation.
func (c *Context) claim(token string) {
	if _, exists := c.tokens[token]; exists {
		panic(fmt.Sprintf("world: duplicate entity token %q", token))
	}
	c.tokens[token] = struct{}{}
}

func splitPool(data string, lower bool) []string {
	if lower {
		data = strings.ToLower(data)
	}
	var names []string
	for _, line := range strings.Split(data, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names
}

var tokenPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Sanitize derives an identifier-safe token fragment from a display name.
func Sanitize(name string) string {
	return strings.ToLower(tokenPattern.ReplaceAllString(name, "_"))
}

func shuffle[T any](c *Context, s []T) {
	c.rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func shuffledCopy[T any](c *Context, s []T) []T {
	out := append([]T(nil), s...)
	shuffle(c, out)
	return out
}
