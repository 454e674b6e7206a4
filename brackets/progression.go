package brackets

import (
	"sort"

	"github.com/Dosada05/league-platform/models"
)

// BracketSpec is the organizer-supplied definition of one tournament
// stage, before validation. Sources declare which placements of an
// earlier-listed bracket feed this one; a bracket without sources takes
// its entrants from initial registration.
type BracketSpec struct {
	Name     string             `json:"name"`
	Type     models.BracketType `json:"type"`
	Settings BracketSettings    `json:"settings"`
	Sources  []SourceSpec       `json:"sources,omitempty"`
}

// BracketSettings carries the per-type knobs the validator needs. A zero
// value means "not set".
type BracketSettings struct {
	TeamsPerGroup int `json:"teams_per_group,omitempty"`
	GroupCount    int `json:"group_count,omitempty"`
}

// SourceSpec references an origin bracket by its index in the spec list
// and the user-facing placement string ("1-3", "1,2,3", "-1").
type SourceSpec struct {
	BracketIdx int    `json:"bracket_idx"`
	Placements string `json:"placements"`
}

// ResolvedSource is a validated source, ready for persistence.
type ResolvedSource struct {
	BracketIdx int   `json:"bracket_idx"`
	Placements []int `json:"placements"`
}

// ResolvedBracket is a validated bracket definition.
type ResolvedBracket struct {
	Name     string             `json:"name"`
	Type     models.BracketType `json:"type"`
	Settings BracketSettings    `json:"settings"`
	Sources  []ResolvedSource   `json:"sources,omitempty"`
}

// ProgressionErrorKind enumerates every way a progression can be invalid.
type ProgressionErrorKind string

const (
	ErrEmptyBracketName        ProgressionErrorKind = "EMPTY_BRACKET_NAME"
	ErrDuplicateBracketName    ProgressionErrorKind = "DUPLICATE_BRACKET_NAME"
	ErrPlacementsParse         ProgressionErrorKind = "PLACEMENTS_PARSE_ERROR"
	ErrSamePlacementTwoTargets ProgressionErrorKind = "SAME_PLACEMENT_TO_TWO_BRACKETS"
	ErrGapInPlacements         ProgressionErrorKind = "GAP_IN_PLACEMENTS"
	ErrTooManyPlacements       ProgressionErrorKind = "TOO_MANY_PLACEMENTS"
	ErrNegativeProgression     ProgressionErrorKind = "NEGATIVE_PROGRESSION"
	ErrCircularProgression     ProgressionErrorKind = "CIRCULAR_PROGRESSION"
	ErrNotResolvingWinner      ProgressionErrorKind = "NOT_RESOLVING_WINNER"
)

// ProgressionError is one field-level validation failure. BracketIdxs
// lists every bracket involved so a UI can highlight all broken fields.
type ProgressionError struct {
	Kind        ProgressionErrorKind `json:"kind"`
	BracketIdxs []int                `json:"bracket_idxs"`
}

// ValidateProgression checks a set of bracket definitions for structural
// soundness before any stage is materialized. All checks run and every
// applicable error is accumulated; nothing short-circuits. On success the
// returned brackets carry resolved, typed sources and the error slice is
// nil; on failure the bracket slice is nil.
func ValidateProgression(specs []BracketSpec) ([]ResolvedBracket, []ProgressionError) {
	var errs []ProgressionError

	errs = append(errs, checkNames(specs)...)

	resolved, parseErrs := resolveSources(specs)
	errs = append(errs, parseErrs...)

	errs = append(errs, checkPlacements(specs, resolved)...)
	errs = append(errs, checkCycles(specs, resolved)...)
	errs = append(errs, checkTerminalWinner(specs, resolved)...)

	if len(errs) > 0 {
		return nil, errs
	}

	result := make([]ResolvedBracket, len(specs))
	for i, spec := range specs {
		result[i] = ResolvedBracket{
			Name:     spec.Name,
			Type:     spec.Type,
			Settings: spec.Settings,
			Sources:  resolved[i],
		}
	}
	return result, nil
}

func checkNames(specs []BracketSpec) []ProgressionError {
	var errs []ProgressionError

	var empty []int
	for i, spec := range specs {
		if spec.Name == "" {
			empty = append(empty, i)
		}
	}
	if len(empty) > 0 {
		errs = append(errs, ProgressionError{Kind: ErrEmptyBracketName, BracketIdxs: empty})
	}

	byName := make(map[string][]int)
	for i, spec := range specs {
		if spec.Name == "" {
			continue
		}
		byName[spec.Name] = append(byName[spec.Name], i)
	}
	var dups []int
	for _, idxs := range byName {
		if len(idxs) > 1 {
			dups = append(dups, idxs...)
		}
	}
	if len(dups) > 0 {
		sort.Ints(dups)
		errs = append(errs, ProgressionError{Kind: ErrDuplicateBracketName, BracketIdxs: dups})
	}

	return errs
}

// resolveSources parses every source's placement string. All parse
// failures for the whole tournament are folded into a single error so the
// UI can highlight every broken field at once. A source pointing at a
// nonexistent bracket index counts as a parse failure too.
func resolveSources(specs []BracketSpec) ([][]ResolvedSource, []ProgressionError) {
	resolved := make([][]ResolvedSource, len(specs))

	var broken []int
	for i, spec := range specs {
		ok := true
		sources := make([]ResolvedSource, 0, len(spec.Sources))
		for _, src := range spec.Sources {
			if src.BracketIdx < 0 || src.BracketIdx >= len(specs) {
				ok = false
				continue
			}
			placements, err := ParsePlacements(src.Placements)
			if err != nil {
				ok = false
				continue
			}
			sources = append(sources, ResolvedSource{BracketIdx: src.BracketIdx, Placements: placements})
		}
		if !ok {
			broken = append(broken, i)
			continue
		}
		resolved[i] = sources
	}

	if len(broken) > 0 {
		return resolved, []ProgressionError{{Kind: ErrPlacementsParse, BracketIdxs: broken}}
	}
	return resolved, nil
}

// checkPlacements runs the per-origin overlap, contiguity, cardinality and
// polarity checks over the resolved sources.
func checkPlacements(specs []BracketSpec, resolved [][]ResolvedSource) []ProgressionError {
	var errs []ProgressionError

	type claim struct {
		destIdx   int
		placement int
	}
	claimsByOrigin := make(map[int][]claim)
	for destIdx, sources := range resolved {
		for _, src := range sources {
			for _, p := range src.Placements {
				claimsByOrigin[src.BracketIdx] = append(claimsByOrigin[src.BracketIdx], claim{destIdx, p})
			}
		}
	}

	origins := make([]int, 0, len(claimsByOrigin))
	for origin := range claimsByOrigin {
		origins = append(origins, origin)
	}
	sort.Ints(origins)

	for _, origin := range origins {
		claims := claimsByOrigin[origin]

		// overlap: the same placement claimed more than once, whether by
		// two destinations or by two sources of one destination
		claimsByPlacement := make(map[int][]claim)
		overlapping := make(map[int]struct{})
		for _, c := range claims {
			claimsByPlacement[c.placement] = append(claimsByPlacement[c.placement], c)
		}
		for _, dup := range claimsByPlacement {
			if len(dup) > 1 {
				for _, c := range dup {
					overlapping[c.destIdx] = struct{}{}
				}
			}
		}
		if len(overlapping) > 0 {
			idxs := []int{origin}
			for d := range overlapping {
				idxs = append(idxs, d)
			}
			sort.Ints(idxs)
			errs = append(errs, ProgressionError{Kind: ErrSamePlacementTwoTargets, BracketIdxs: idxs})
		}

		// contiguity: positive placements must form a prefix 1..k
		positive := make(map[int]struct{})
		maxPositive := 0
		hasNegative := false
		for _, c := range claims {
			if c.placement > 0 {
				positive[c.placement] = struct{}{}
				if c.placement > maxPositive {
					maxPositive = c.placement
				}
			} else {
				hasNegative = true
			}
		}
		for p := 1; p <= maxPositive; p++ {
			if _, ok := positive[p]; !ok {
				errs = append(errs, ProgressionError{Kind: ErrGapInPlacements, BracketIdxs: []int{origin}})
				break
			}
		}

		// cardinality: an origin with a fixed group size cannot rank more
		// entrants than it has
		capacity := specs[origin].Settings.TeamsPerGroup
		if capacity > 0 && (len(positive) > capacity || maxPositive > capacity) {
			errs = append(errs, ProgressionError{Kind: ErrTooManyPlacements, BracketIdxs: []int{origin}})
		}

		// polarity: bottom-finisher placements need an elimination origin
		if hasNegative && !specs[origin].Type.EliminationStyle() {
			errs = append(errs, ProgressionError{Kind: ErrNegativeProgression, BracketIdxs: []int{origin}})
		}
	}

	return errs
}

// checkCycles finds brackets that are, transitively, their own source.
func checkCycles(specs []BracketSpec, resolved [][]ResolvedSource) []ProgressionError {
	adjacent := make(map[int][]int, len(specs))
	for destIdx, sources := range resolved {
		for _, src := range sources {
			adjacent[src.BracketIdx] = append(adjacent[src.BracketIdx], destIdx)
		}
	}

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make([]int, len(specs))
	onCycle := make(map[int]struct{})

	var stack []int
	var visit func(int)
	visit = func(n int) {
		state[n] = inStack
		stack = append(stack, n)
		for _, next := range adjacent[n] {
			switch state[next] {
			case unvisited:
				visit(next)
			case inStack:
				// everything from next's position in the stack onward is a cycle
				for i := len(stack) - 1; i >= 0; i-- {
					onCycle[stack[i]] = struct{}{}
					if stack[i] == next {
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
	}
	for i := range specs {
		if state[i] == unvisited {
			visit(i)
		}
	}

	if len(onCycle) == 0 {
		return nil
	}
	idxs := make([]int, 0, len(onCycle))
	for i := range onCycle {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return []ProgressionError{{Kind: ErrCircularProgression, BracketIdxs: idxs}}
}

// checkTerminalWinner requires at least one final stage (a bracket nobody
// progresses out of) whose type can resolve a single champion.
func checkTerminalWinner(specs []BracketSpec, resolved [][]ResolvedSource) []ProgressionError {
	if len(specs) == 0 {
		return nil
	}

	hasDestination := make([]bool, len(specs))
	for _, sources := range resolved {
		for _, src := range sources {
			hasDestination[src.BracketIdx] = true
		}
	}

	var finals []int
	for i := range specs {
		if !hasDestination[i] {
			finals = append(finals, i)
		}
	}
	for _, i := range finals {
		if specs[i].Type.CanResolveWinner() {
			return nil
		}
	}
	return []ProgressionError{{Kind: ErrNotResolvingWinner, BracketIdxs: finals}}
}
