package espn

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
)

const konaMarker = "__KONA_SERIALIZATION_DATA__"

// Constants is the subset of the ESPN front-end constants this service cares about.
type Constants struct {
	// Positions maps position abbreviation to provider default position id.
	Positions map[string]int
}

// FetchConstants scrapes the fantasy boxscore page and reads the serialized front-end state
// embedded in it.
func (c *Client) FetchConstants(ctx context.Context) (Constants, error) {
	raw, err := c.get(ctx, request{path: c.constantsURL, query: nil, accept: "text/html"})
	if err != nil {
		return Constants{}, crerr.Wrap(err, "fetch espn constants page")
	}
	return parseConstantsPage(raw)
}

// Registry overlays the scraped position ids on base.
func (k Constants) Registry(base *position.Registry) *position.Registry {
	if base == nil {
		base = position.DefaultRegistry()
	}
	return base.Merge(k.Positions)
}

func parseConstantsPage(page []byte) (Constants, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return Constants{}, crerr.Wrap(err, "parse espn constants page")
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, konaMarker)
		if idx < 0 {
			return true
		}
		payload = text[idx+len(konaMarker):]
		return false
	})
	if payload == "" {
		return Constants{}, fmt.Errorf("espn constants page has no %s script", konaMarker)
	}

	payload = strings.TrimSpace(payload)
	payload = strings.TrimSpace(strings.TrimPrefix(payload, "="))
	if end := strings.Index(payload, "\n"); end > 0 {
		payload = payload[:end]
	}
	payload = strings.TrimSuffix(strings.TrimSpace(payload), ";")

	var kona any
	if err := sonic.UnmarshalString(payload, &kona); err != nil {
		return Constants{}, crerr.Wrap(err, "decode kona serialization data")
	}

	positions := map[string]int{}
	if rows, ok := knownPositionRows(kona); ok {
		appendPositionRows(rows, positions)
	}
	if len(positions) == 0 {
		collectPositions(kona, positions)
	}
	if len(positions) == 0 {
		return Constants{}, fmt.Errorf("kona serialization data has no positions")
	}
	return Constants{Positions: positions}, nil
}

// knownPositionRows returns constants.positions, where the front end keeps the canonical table.
func knownPositionRows(kona any) (any, bool) {
	root, ok := kona.(map[string]any)
	if !ok {
		return nil, false
	}
	constants, ok := root["constants"].(map[string]any)
	if !ok {
		return nil, false
	}
	rows, ok := constants["positions"]
	return rows, ok
}

// collectPositions walks the decoded state for "positions" arrays of {id, abbrev} objects.
// Keys are visited in sorted order so the first id kept for an abbreviation is stable.
func collectPositions(node any, out map[string]int) {
	switch v := node.(type) {
	case map[string]any:
		for _, key := range sortedKeys(v) {
			if key == "positions" {
				appendPositionRows(v[key], out)
			}
			collectPositions(v[key], out)
		}
	case []any:
		for _, child := range v {
			collectPositions(child, out)
		}
	}
}

func appendPositionRows(node any, out map[string]int) {
	appendRow := func(row any) {
		obj, ok := row.(map[string]any)
		if !ok {
			return
		}
		abbrev, _ := obj["abbrev"].(string)
		id, ok := obj["id"].(float64)
		if !ok || strings.TrimSpace(abbrev) == "" {
			return
		}
		if _, exists := out[abbrev]; !exists {
			out[abbrev] = int(id)
		}
	}

	switch rows := node.(type) {
	case []any:
		for _, row := range rows {
			appendRow(row)
		}
	case map[string]any:
		for _, key := range sortedKeys(rows) {
			appendRow(rows[key])
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
