package reconcile

import (
	"context"
	"sort"
)

const (
	issueNotArchived   = "installed release is not archived"
	issueNoHistory     = "archived release has no recorded install"
	issueUnrecoverable = "release is neither archived nor installed"
)

// ReconcileAll returns one result per tag found in any source, sorted by tag.
func ReconcileAll(ctx context.Context, spec *Spec) ([]ReleaseResult, error) {
	idx, err := GetOrBuildIndex(ctx, spec)
	if err != nil {
		return nil, err
	}
	return resultsFromIndex(idx), nil
}

// ReconcileOne returns the result for a single tag. A tag unknown to every
// source yields a result with no presence flags set.
func ReconcileOne(ctx context.Context, spec *Spec, tag string) (*ReleaseResult, error) {
	idx, err := GetOrBuildIndex(ctx, spec)
	if err != nil {
		return nil, err
	}
	result := buildResult(tag, idx)
	return &result, nil
}

func resultsFromIndex(idx *Index) []ReleaseResult {
	union := buildUnion(idx)

	results := make([]ReleaseResult, 0, len(union))
	for tag := range union {
		results = append(results, buildResult(tag, idx))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Tag < results[j].Tag
	})
	return results
}

func buildUnion(idx *Index) map[string]struct{} {
	union := make(map[string]struct{}, len(idx.History)+len(idx.Archive)+1)
	for tag := range idx.History {
		union[tag] = struct{}{}
	}
	for tag := range idx.Archive {
		union[tag] = struct{}{}
	}
	if idx.Installed != "" {
		union[idx.Installed] = struct{}{}
	}
	return union
}

func buildResult(tag string, idx *Index) ReleaseResult {
	_, historyPresent := idx.History[tag]
	archived, archivePresent := idx.Archive[tag]

	result := ReleaseResult{
		Tag:            tag,
		HistoryPresent: historyPresent,
		ArchivePresent: archivePresent,
		Installed:      tag != "" && tag == idx.Installed,
		Issues:         []string{},
	}
	if archivePresent {
		at := archived.LastModified
		result.ArchivedAt = &at
		result.Size = archived.Size
	}

	if idx.ArchiveAvailable && !archivePresent {
		if result.Installed {
			result.Issues = append(result.Issues, issueNotArchived)
		} else if historyPresent {
			result.Issues = append(result.Issues, issueUnrecoverable)
		}
	}
	if idx.HistoryAvailable && archivePresent && !historyPresent {
		result.Issues = append(result.Issues, issueNoHistory)
	}
	return result
}
