package reconcile

import (
	"context"
	"fmt"
)

// ReconcileWithPlan reconciles and returns a plan with results and actions.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec) (*ReleasePlan, error) {
	idx, err := GetOrBuildIndex(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := resultsFromIndex(idx)
	summary, actions := buildPlanFromResults(results, idx)

	return &ReleasePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

func buildPlanFromResults(results []ReleaseResult, idx *Index) (PlanSummary, []Action) {
	summary := PlanSummary{
		TotalTags:        len(results),
		HistoryAvailable: idx.HistoryAvailable,
		ArchiveAvailable: idx.ArchiveAvailable,
	}
	actions := []Action{}

	for _, r := range results {
		if idx.ArchiveAvailable && !r.ArchivePresent && (r.Installed || r.HistoryPresent) {
			summary.MissingArchive++
		}
		if idx.HistoryAvailable && r.ArchivePresent && !r.HistoryPresent {
			summary.MissingHistory++
		}
		if idx.ArchiveAvailable && r.Installed && !r.ArchivePresent {
			actions = append(actions, Action{
				Type:   ActionArchiveInstalled,
				Tag:    r.Tag,
				Reason: issueNotArchived,
			})
		}
	}

	summary.ArchiveActions = len(actions)
	return summary, actions
}

// ApplyPlan executes the actions of plan and returns how many ran.
// Nothing runs unless opts.Confirmed is set and opts.DryRun is not.
// The cached index for spec is invalidated after any action ran.
func ApplyPlan(ctx context.Context, spec *Spec, archiver Archiver, executablePath string, plan *ReleasePlan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	defer func() {
		if executed > 0 {
			InvalidateCache(spec)
		}
	}()

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionArchiveInstalled:
			if spec.Local != nil {
				if v, ok := spec.Local.ReadLocal(); !ok || v != action.Tag {
					return executed, fmt.Errorf("installed version changed since the plan was built (planned %s, installed %q)", action.Tag, v)
				}
			}
			if err := archiver.Store(ctx, spec.ServerID, action.Tag, executablePath); err != nil {
				return executed, fmt.Errorf("failed to archive %s: %w", action.Tag, err)
			}
			executed++
		default:
			return executed, fmt.Errorf("unknown action type %q", action.Type)
		}
	}
	return executed, nil
}
