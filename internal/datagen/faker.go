package datagen

import (
	"fmt"
	"math/rand"
	"strings"
)

// faker produces realistic-looking values keyed by column name. A fixed rand
// source keeps output reproducible for a given seed.
type faker struct {
	rand     *rand.Rand
	emailSeq int
}

var (
	firstNames = []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	cities     = []string{"Springfield", "Riverside", "Fairview", "Georgetown", "Arlington", "Salem", "Madison", "Clinton"}
	states     = []string{"California", "Texas", "New York", "Florida", "Ohio", "Washington", "Oregon", "Colorado"}
	countries  = []string{"United States", "Canada", "Germany", "France", "Japan", "Brazil", "Australia", "India"}
	companies  = []string{"Acme Corp", "Globex", "Initech", "Umbrella Group", "Stark Industries", "Wayne Enterprises", "Hooli", "Vandelay"}
	jobs       = []string{"Software Engineer", "Data Analyst", "Product Manager", "Accountant", "Designer", "Sales Representative", "Technician", "Consultant"}
	domains    = []string{"example.com", "test.com", "demo.com", "mail.com"}
	sentences  = []string{
		"This is a sample text generated for testing purposes.",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		"The quick brown fox jumps over the lazy dog.",
		"Software development requires careful planning and execution.",
		"Database design is crucial for application performance.",
	}
)

func newFaker(r *rand.Rand) *faker {
	return &faker{rand: r}
}

func (f *faker) name() string {
	return firstNames[f.rand.Intn(len(firstNames))] + " " + lastNames[f.rand.Intn(len(lastNames))]
}

func (f *faker) email() string {
	f.emailSeq++
	return fmt.Sprintf("user%d_%d@%s", f.emailSeq, f.rand.Intn(100000), domains[f.rand.Intn(len(domains))])
}

func (f *faker) phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", f.rand.Intn(1000), f.rand.Intn(1000), f.rand.Intn(10000))
}

func (f *faker) address() string {
	return fmt.Sprintf("%d Main Street, %s, %s", f.rand.Intn(9999)+1, f.city(), f.state())
}

func (f *faker) city() string {
	return cities[f.rand.Intn(len(cities))]
}

func (f *faker) state() string {
	return states[f.rand.Intn(len(states))]
}

func (f *faker) country() string {
	return countries[f.rand.Intn(len(countries))]
}

func (f *faker) company() string {
	return companies[f.rand.Intn(len(companies))]
}

func (f *faker) job() string {
	return jobs[f.rand.Intn(len(jobs))]
}

func (f *faker) sentence() string {
	return sentences[f.rand.Intn(len(sentences))]
}

// byColumnName returns a fake value matched on the column name, or "" with
// ok=false when the name suggests nothing.
func (f *faker) byColumnName(colName string) (string, bool) {
	lower := strings.ToLower(colName)
	switch {
	case strings.Contains(lower, "email") || strings.Contains(lower, "mail"):
		return f.email(), true
	case strings.Contains(lower, "phone") || strings.Contains(lower, "mobile") || strings.Contains(lower, "tel"):
		return f.phone(), true
	case strings.Contains(lower, "address") || strings.Contains(lower, "street"):
		return f.address(), true
	case strings.Contains(lower, "city"):
		return f.city(), true
	case strings.Contains(lower, "state") || strings.Contains(lower, "province"):
		return f.state(), true
	case strings.Contains(lower, "country"):
		return f.country(), true
	case strings.Contains(lower, "company") || strings.Contains(lower, "organization"):
		return f.company(), true
	case strings.Contains(lower, "job") || strings.Contains(lower, "position") || strings.Contains(lower, "title"):
		return f.job(), true
	case strings.Contains(lower, "description") || strings.Contains(lower, "text") || strings.Contains(lower, "comment"):
		return f.sentence(), true
	case strings.Contains(lower, "name"):
		return f.name(), true
	}
	return "", false
}
