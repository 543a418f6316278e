// Package content selects the hadith, verse and dhikr attached to a reminder.
// Selection is a pure function of the fire instant so the same instant always
// yields the same content.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/wird/internal/models"
)

//go:embed data/builtin.json
var builtinData []byte

// Provider returns one content item for an instant
type Provider interface {
	HadithAt(t time.Time) (models.Hadith, bool)
	VerseAt(t time.Time) (models.Verse, bool)
	DhikrAt(t time.Time) (models.Dhikr, bool)
	// KahfAt returns the opening ayahs of Surat al-Kahf read on Fridays
	KahfAt(t time.Time) []models.Verse
}

// Collection is a static, in-memory content set
type Collection struct {
	Hadith []models.Hadith `json:"hadith"`
	Verses []models.Verse  `json:"verses"`
	Dhikr  []models.Dhikr  `json:"dhikr"`
	Kahf   []models.Verse  `json:"kahf"`
}

var (
	builtinOnce sync.Once
	builtin     *Collection
)

// Builtin returns the collection compiled into the binary.
func Builtin() *Collection {
	builtinOnce.Do(func() {
		c, err := Parse(builtinData)
		if err != nil {
			panic(fmt.Sprintf("content: invalid builtin collection: %v", err))
		}
		builtin = c
	})
	return builtin
}

// Parse decodes a JSON content collection.
func Parse(data []byte) (*Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content collection: %w", err)
	}
	return &c, nil
}

// LoadFile reads a JSON content collection from path.
func LoadFile(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data)
}

func (c *Collection) HadithAt(t time.Time) (models.Hadith, bool) {
	if len(c.Hadith) == 0 {
		return models.Hadith{}, false
	}
	return c.Hadith[Index(t, len(c.Hadith))], true
}

func (c *Collection) VerseAt(t time.Time) (models.Verse, bool) {
	if len(c.Verses) == 0 {
		return models.Verse{}, false
	}
	return c.Verses[Index(t, len(c.Verses))], true
}

func (c *Collection) DhikrAt(t time.Time) (models.Dhikr, bool) {
	if len(c.Dhikr) == 0 {
		return models.Dhikr{}, false
	}
	return c.Dhikr[Index(t, len(c.Dhikr))], true
}

func (c *Collection) KahfAt(time.Time) []models.Verse {
	out := make([]models.Verse, len(c.Kahf))
	copy(out, c.Kahf)
	return out
}

// Index maps an instant onto [0, n). Day-of-year, hour, minute and second are
// mixed with distinct prime weights so instants on the same day rarely
// collide.
func Index(t time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	h := t.YearDay()*7919 + t.Hour()*313 + t.Minute()*37 + t.Second()
	return h % n
}

// Excerpt shortens s to at most max runes, marking the cut with an ellipsis.
func Excerpt(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
