// Package seeder generates synthetic security event datasets in the raw
// collector format the store ingests.
package seeder

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/seclens/seclens/internal/store"
)

// Config controls dataset generation.
type Config struct {
	// Count is the number of events to generate.
	Count int

	// Window is how far back from now the events are spread.
	Window time.Duration

	// Seed makes generation reproducible when non-zero.
	Seed int64
}

// DefaultConfig returns a Config producing a week of moderate activity.
func DefaultConfig() Config {
	return Config{
		Count:  500,
		Window: 7 * 24 * time.Hour,
	}
}

// Raw collector categories with sampling weights. Failures and successes
// dominate; malware stays rare so high-risk counts look plausible.
var eventTypeWeights = []struct {
	name   string
	weight int
}{
	{"login_failed", 30},
	{"login_success", 35},
	{"vpn_access", 15},
	{"suspicious_activity", 12},
	{"malware_detected", 8},
}

var signaturesByType = map[string][]string{
	"login_failed": {
		"Failed password for user",
		"Invalid credentials",
		"Account locked after repeated failures",
		"MFA challenge failed",
	},
	"login_success": {
		"Accepted password for user",
		"Session established via MFA",
		"Multi-factor authentication succeeded",
		"SSO assertion accepted",
	},
	"vpn_access": {
		"VPN tunnel established",
		"VPN session renegotiated",
		"VPN login with multi-factor verification",
	},
	"suspicious_activity": {
		"Port scan detected",
		"Unusual outbound transfer volume",
		"Login from unrecognized location",
	},
	"malware_detected": {
		"Trojan signature matched",
		"Ransomware behavior blocked",
		"Malicious payload quarantined",
	},
}

var labelsByType = map[string][]string{
	"login_failed":        {"", "suspicious", "high_risk"},
	"login_success":       {"", "", ""},
	"vpn_access":          {"", "", "suspicious"},
	"suspicious_activity": {"suspicious", "suspicious", "high_risk"},
	"malware_detected":    {"high_risk", "high_risk", "suspicious"},
}

// Generator produces raw dataset records.
type Generator struct {
	cfg  Config
	rng  *rand.Rand
	fake *gofakeit.Faker
}

// NewGenerator builds a generator from the config.
func NewGenerator(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(seed)),
		fake: gofakeit.New(seed),
	}
}

// Generate produces cfg.Count records spread across the time window, oldest
// first.
func (g *Generator) Generate() []store.RawRecord {
	now := time.Now().UTC()

	// A small stable population of actors so top-N charts have repeats.
	users := make([]string, 12)
	for i := range users {
		users[i] = g.fake.Username()
	}
	ips := make([]string, 20)
	for i := range ips {
		ips[i] = g.fake.IPv4Address()
	}

	records := make([]store.RawRecord, 0, g.cfg.Count)
	for i := 0; i < g.cfg.Count; i++ {
		eventType := g.pickEventType()
		ts := g.eventTime(now, i)

		rec := store.RawRecord{
			Timestamp:     ts.Format(time.RFC3339),
			SourceIP:      ips[g.rng.Intn(len(ips))],
			DestinationIP: g.fake.IPv4Address(),
			EventType:     eventType,
			Signature:     pick(g.rng, signaturesByType[eventType]),
			Username:      users[g.rng.Intn(len(users))],
			Label:         pick(g.rng, labelsByType[eventType]),
		}
		rec.Details = fmt.Sprintf("%s from %s", rec.Signature, rec.SourceIP)
		records = append(records, rec)
	}
	return records
}

// WriteFile generates a dataset and writes it as a JSON array.
func (g *Generator) WriteFile(path string) error {
	records := g.Generate()
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

func (g *Generator) pickEventType() string {
	total := 0
	for _, w := range eventTypeWeights {
		total += w.weight
	}
	n := g.rng.Intn(total)
	for _, w := range eventTypeWeights {
		if n < w.weight {
			return w.name
		}
		n -= w.weight
	}
	return eventTypeWeights[0].name
}

// eventTime spreads events across the window with jitter so hourly buckets
// are uneven but every stretch of the window has activity.
func (g *Generator) eventTime(now time.Time, index int) time.Time {
	baseInterval := float64(g.cfg.Window) / float64(g.cfg.Count)
	baseOffset := time.Duration(float64(index) * baseInterval)

	jitterRange := baseInterval * 0.4
	jitter := time.Duration((g.rng.Float64()*2.0 - 1.0) * jitterRange)

	totalOffset := baseOffset + jitter
	if totalOffset < 0 {
		totalOffset = 0
	}
	if totalOffset > g.cfg.Window {
		totalOffset = g.cfg.Window
	}

	return now.Add(-(g.cfg.Window - totalOffset))
}

func pick(rng *rand.Rand, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rng.Intn(len(options))]
}
