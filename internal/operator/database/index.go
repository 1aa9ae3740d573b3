// Package database merges parsed operator record sets into an immutable,
// arena-backed index with network-code and name lookups.
package database

import (
	"fmt"
	"regexp"
	"strings"

	"opinfo/internal/operator/models"
	"opinfo/pkg/platform/sentinel"
)

// MNOID addresses an MNO inside the index arena.
type MNOID int

// NoMNO is the "no operator" sentinel id.
const NoMNO MNOID = -1

// Valid reports whether id refers to an arena slot.
func (id MNOID) Valid() bool { return id >= 0 }

// Filter is an MVNO filter with its anchored regex compiled at load time.
// A compile failure is kept on the filter rather than failing the load.
type Filter struct {
	models.Filter
	re  *regexp.Regexp
	err error
}

// CompileErr returns the regex compile error, if any.
func (f Filter) CompileErr() error { return f.err }

// Matches reports whether value fully matches the filter regex.
func (f Filter) Matches(value string) bool {
	if f.re == nil {
		return false
	}
	return f.re.MatchString(value)
}

// FilterIssue locates a filter whose regex failed to compile.
type FilterIssue struct {
	MNO    MNOID
	MVNO   int
	Filter int
	Regex  string
	Err    error
}

// Index is the merged, read-only view of every loaded record set.
type Index struct {
	mnos     []models.MNO
	filters  [][][]Filter
	byMCCMNC map[string][]MNOID
	byName   map[string][]MNOID
	imvnos   int
}

// Load unions all record sets into one index. Mappings are appended in
// declaration order without de-duplication, so an operator declared twice
// shows up twice in a lookup. Zero sets is a load failure; an empty set is not.
func Load(sets ...models.RecordSet) (*Index, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("load operator index: %w", sentinel.ErrNoDatabase)
	}

	idx := &Index{
		byMCCMNC: make(map[string][]MNOID),
		byName:   make(map[string][]MNOID),
	}
	for _, set := range sets {
		idx.imvnos += len(set.IMVNOs)
		for _, mno := range set.MNOs {
			id := MNOID(len(idx.mnos))
			idx.mnos = append(idx.mnos, mno)
			idx.filters = append(idx.filters, compileMVNOFilters(mno.MVNOs))

			for _, code := range mno.Data.MCCMNCs {
				idx.byMCCMNC[code] = append(idx.byMCCMNC[code], id)
			}
			for _, name := range mno.Data.LocalizedNames {
				idx.byName[name.Name] = append(idx.byName[name.Name], id)
			}
		}
	}
	return idx, nil
}

func compileMVNOFilters(mvnos []models.MVNO) [][]Filter {
	out := make([][]Filter, len(mvnos))
	for i, mvno := range mvnos {
		out[i] = make([]Filter, len(mvno.Filters))
		for j, f := range mvno.Filters {
			re, err := regexp.CompilePOSIX(Anchor(f.Regex))
			out[i][j] = Filter{Filter: f, re: re, err: err}
		}
	}
	return out
}

// Anchor strips any anchors already present on pattern and wraps the body
// in a group so that alternation is anchored as a whole: "a|b" becomes
// "^(a|b)$" and only full-string matches pass. The group is capturing
// because POSIX syntax has no non-capturing form.
func Anchor(pattern string) string {
	body := strings.TrimPrefix(pattern, "^")
	if strings.HasSuffix(body, "$") && !escaped(body, len(body)-1) {
		body = body[:len(body)-1]
	}
	return "^(" + body + ")$"
}

// escaped reports whether the byte at pos is preceded by an odd number of
// backslashes.
func escaped(s string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// Len returns the number of MNOs in the arena.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.mnos)
}

// MVNOCount returns the number of MVNOs across all MNOs.
func (i *Index) MVNOCount() int {
	if i == nil {
		return 0
	}
	n := 0
	for _, mno := range i.mnos {
		n += len(mno.MVNOs)
	}
	return n
}

// IgnoredIMVNOs returns how many international MVNOs were skipped.
func (i *Index) IgnoredIMVNOs() int {
	if i == nil {
		return 0
	}
	return i.imvnos
}

// MNO returns the record for id, or nil when id is out of range.
func (i *Index) MNO(id MNOID) *models.MNO {
	if i == nil || id < 0 || int(id) >= len(i.mnos) {
		return nil
	}
	return &i.mnos[id]
}

// MVNO returns the pos-th MVNO of id, or nil.
func (i *Index) MVNO(id MNOID, pos int) *models.MVNO {
	mno := i.MNO(id)
	if mno == nil || pos < 0 || pos >= len(mno.MVNOs) {
		return nil
	}
	return &mno.MVNOs[pos]
}

// Filters returns the compiled filters of the pos-th MVNO of id.
func (i *Index) Filters(id MNOID, pos int) []Filter {
	if i.MNO(id) == nil || pos < 0 || pos >= len(i.filters[id]) {
		return nil
	}
	return i.filters[id][pos]
}

// ByMCCMNC returns a fresh slice of MNOs declaring code.
func (i *Index) ByMCCMNC(code string) []MNOID {
	if i == nil {
		return nil
	}
	return clone(i.byMCCMNC[code])
}

// ByName returns a fresh slice of MNOs declaring name as a localized name.
func (i *Index) ByName(name string) []MNOID {
	if i == nil {
		return nil
	}
	return clone(i.byName[name])
}

// FilterIssues lists every filter whose regex did not compile.
func (i *Index) FilterIssues() []FilterIssue {
	if i == nil {
		return nil
	}
	var issues []FilterIssue
	for mno, mvnos := range i.filters {
		for mvno, filters := range mvnos {
			for pos, f := range filters {
				if f.err != nil {
					issues = append(issues, FilterIssue{
						MNO:    MNOID(mno),
						MVNO:   mvno,
						Filter: pos,
						Regex:  f.Regex,
						Err:    f.err,
					})
				}
			}
		}
	}
	return issues
}

func clone(ids []MNOID) []MNOID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]MNOID, len(ids))
	copy(out, ids)
	return out
}
