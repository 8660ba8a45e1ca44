package conv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rc-tools/ncharness/pkg/config"
)

// ParseIDs converts a list of identifier expressions into identifiers,
// preserving order. Every element may hold comma-separated values, each being
// a single id ("21") or an inclusive range ("21-24").
func ParseIDs(in ...string) ([]int, error) {
	var res []int
	for _, expr := range in {
		for _, tok := range strings.Split(expr, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			lo, hi, isRange := strings.Cut(tok, "-")
			from, err := strconv.Atoi(lo)
			if err != nil {
				return nil, fmt.Errorf("invalid id: %s", tok)
			}
			if !isRange {
				res = append(res, from)
				continue
			}
			to, err := strconv.Atoi(hi)
			if err != nil {
				return nil, fmt.Errorf("invalid id range: %s", tok)
			}
			if to < from {
				return nil, fmt.Errorf("invalid id range: %s; end precedes start", tok)
			}
			for id := from; id <= to; id++ {
				res = append(res, id)
			}
		}
	}
	return res, nil
}

// ParseGroup parses a group expression of the form IDS[:REPEAT[:wait]], e.g.
// "1,2,3,4:3" or "11:1:wait". REPEAT defaults to 1.
func ParseGroup(in string) (config.Group, error) {
	parts := strings.Split(in, ":")
	if len(parts) > 3 {
		return config.Group{}, fmt.Errorf("invalid group: %s", in)
	}

	ids, err := ParseIDs(parts[0])
	if err != nil {
		return config.Group{}, fmt.Errorf("invalid group %s: %w", in, err)
	}
	if len(ids) == 0 {
		return config.Group{}, fmt.Errorf("invalid group %s: no ids", in)
	}
	g := config.Group{IDs: ids, Repeat: 1}

	if len(parts) > 1 && parts[1] != "" {
		if g.Repeat, err = strconv.Atoi(parts[1]); err != nil || g.Repeat < 1 {
			return config.Group{}, fmt.Errorf("invalid group %s: repeat must be a positive integer", in)
		}
	}

	if len(parts) > 2 {
		switch parts[2] {
		case "wait":
			g.Wait = true
		case "", "nowait":
		default:
			return config.Group{}, fmt.Errorf("invalid group %s: unknown flag %q", in, parts[2])
		}
	}
	return g, nil
}

// ParseGroups parses every element with ParseGroup.
func ParseGroups(in []string) ([]config.Group, error) {
	res := make([]config.Group, 0, len(in))
	for _, s := range in {
		g, err := ParseGroup(s)
		if err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, nil
}
