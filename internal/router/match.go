package router

import (
	"net/url"
	"sort"
	"strings"
)

type segmentKind int

const (
	segStatic segmentKind = iota
	segParam
	segCatchAll
)

// Segment scores, higher wins when two records match the same path.
var segmentScore = map[segmentKind]int{
	segStatic:   4,
	segParam:    3,
	segCatchAll: 1,
}

type segment struct {
	kind  segmentKind
	value string // literal for static, name for params
}

type record struct {
	path     string
	name     string
	view     string
	segments []segment
	chain    []Route
	score    []int
}

func compile(path string) []segment {
	var segs []segment
	for _, part := range splitPath(path) {
		switch {
		case strings.HasPrefix(part, ":") && strings.HasSuffix(part, "*"):
			name := strings.TrimPrefix(part, ":")
			if i := strings.IndexAny(name, "(*"); i >= 0 {
				name = name[:i]
			}
			segs = append(segs, segment{kind: segCatchAll, value: name})
		case strings.HasPrefix(part, ":"):
			segs = append(segs, segment{kind: segParam, value: strings.TrimPrefix(part, ":")})
		default:
			segs = append(segs, segment{kind: segStatic, value: part})
		}
	}
	return segs
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// flatten turns the route tree into matchable records. Only leaves are
// matchable; parents contribute their metadata to the chain.
func flatten(routes []Route, parentPath string, chain []Route, out []*record) []*record {
	for _, r := range routes {
		full := joinPath(parentPath, r.Path)
		node := r
		node.Children = nil
		c := append(append([]Route(nil), chain...), node)
		if len(r.Children) > 0 {
			out = flatten(r.Children, full, c, out)
			continue
		}
		rec := &record{
			path:     full,
			name:     r.Name,
			view:     r.View,
			segments: compile(full),
			chain:    c,
		}
		for _, s := range rec.segments {
			rec.score = append(rec.score, segmentScore[s.kind])
		}
		out = append(out, rec)
	}
	return out
}

// endScore ranks "path ends here" between a param and a catch-all, so
// "/" beats "/:pathMatch(.*)*".
const endScore = 2

func rank(records []*record) {
	at := func(score []int, k int) int {
		if k < len(score) {
			return score[k]
		}
		return endScore
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].score, records[j].score
		for k := 0; k < max(len(a), len(b)); k++ {
			if x, y := at(a, k), at(b, k); x != y {
				return x > y
			}
		}
		return false
	})
}

// match reports whether rec matches the path parts and returns the params.
func (rec *record) match(parts []string) (map[string]string, bool) {
	params := map[string]string{}
	for i, s := range rec.segments {
		if s.kind == segCatchAll {
			params[s.value] = strings.Join(parts[min(i, len(parts)):], "/")
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}
		switch s.kind {
		case segStatic:
			if !strings.EqualFold(s.value, parts[i]) {
				return nil, false
			}
		case segParam:
			if parts[i] == "" {
				return nil, false
			}
			v, err := url.PathUnescape(parts[i])
			if err != nil {
				v = parts[i]
			}
			params[s.value] = v
		}
	}
	if len(parts) != len(rec.segments) {
		return nil, false
	}
	return params, true
}

// build renders the record's path with params substituted.
func (rec *record) build(params map[string]string) (string, error) {
	if len(rec.segments) == 0 {
		return "/", nil
	}
	var b strings.Builder
	for _, s := range rec.segments {
		switch s.kind {
		case segStatic:
			b.WriteString("/" + s.value)
		case segParam:
			v, ok := params[s.value]
			if !ok || v == "" {
				return "", &MissingParamError{Route: rec.name, Param: s.value}
			}
			b.WriteString("/" + url.PathEscape(v))
		case segCatchAll:
			if v := strings.Trim(params[s.value], "/"); v != "" {
				b.WriteString("/" + v)
			}
		}
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}
