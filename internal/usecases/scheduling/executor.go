package scheduling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	MessageExecutionFailed = "Execution failed"
	MessageNoAdGroupsFound = "No ad groups found"
	MessageNothingToChange = "No ad groups required changes"

	defaultBatchSize = 5
)

// TokenProvider returns a bearer token usable for the account's API calls.
type TokenProvider interface {
	GetValidToken(ctx context.Context, accountID string) (string, error)
}

// AdGroupService lists and patches the ad groups of an ads client.
type AdGroupService interface {
	GetAllAdGroups(ctx context.Context, token, adsClientID string) ([]domain.AdGroup, error)
	UpdateAdGroup(ctx context.Context, token, adsClientID, adGroupID string, update domain.AdGroupUpdate) error
}

type ExecutorOptions struct {
	BatchSize  int
	BatchDelay time.Duration
}

// Executor applies a schedule's action to its target ad groups.
type Executor struct {
	tokens   TokenProvider
	adGroups AdGroupService
	opts     ExecutorOptions
}

func NewExecutor(tokens TokenProvider, adGroups AdGroupService, opts ExecutorOptions) *Executor {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	return &Executor{
		tokens:   tokens,
		adGroups: adGroups,
		opts:     opts,
	}
}

type updateJob struct {
	index   int
	adGroup domain.AdGroup
	update  domain.AdGroupUpdate
}

type outcome struct {
	attempted bool
	err       error
}

// Execute runs the schedule's action once. Token and listing failures abort
// the run; failures of single ad groups are collected into the result.
func (e *Executor) Execute(ctx context.Context, schedule *domain.Schedule) domain.ExecutionResult {
	logger := log.FromContext(ctx).WithFields(logrus.Fields{
		"schedule_id":   schedule.ID,
		"account_id":    schedule.AccountID,
		"ads_client_id": schedule.AdsClientID,
		"action_type":   schedule.Action.Type,
	})

	token, err := e.tokens.GetValidToken(ctx, schedule.AccountID)
	if err != nil {
		logger.WithError(err).Error("failed to obtain access token")
		return FailedResult(err)
	}

	adGroups, err := e.adGroups.GetAllAdGroups(ctx, token, schedule.AdsClientID)
	if err != nil {
		logger.WithError(err).Error("failed to fetch ad groups")
		return FailedResult(err)
	}

	candidates := filterAdGroups(adGroups, schedule.AdGroupIDs)
	if len(candidates) == 0 {
		logger.WithField("fetched", len(adGroups)).Info("no ad groups matched the schedule targets")
		return domain.ExecutionResult{
			Success:            false,
			Message:            MessageNoAdGroupsFound,
			AffectedAdGroupIDs: []string{},
		}
	}

	outcomes := make([]outcome, len(candidates))
	jobs := make([]updateJob, 0, len(candidates))

	for i, adGroup := range candidates {
		update, err := BuildUpdate(schedule.Action, adGroup)
		if err != nil {
			outcomes[i] = outcome{err: err}
			continue
		}
		if update == nil {
			logger.WithField("ad_group_id", adGroup.ID).Debug("ad group lacks the field the action changes, skipping")
			continue
		}
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			logger.WithFields(logrus.Fields{
				"ad_group_id": adGroup.ID,
				"patch":       utils.PrettyJson(update),
			}).Debug("ad group update prepared")
		}
		jobs = append(jobs, updateJob{index: i, adGroup: adGroup, update: *update})
	}

	e.applyInBatches(ctx, token, schedule.AdsClientID, jobs, outcomes)

	result := aggregate(candidates, outcomes)

	logger.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"attempted":  len(jobs),
		"affected":   len(result.AffectedAdGroupIDs),
	}).Info(result.Message)

	return result
}

func (e *Executor) applyInBatches(ctx context.Context, token, adsClientID string, jobs []updateJob, outcomes []outcome) {
	for start := 0; start < len(jobs); start += e.opts.BatchSize {
		end := start + e.opts.BatchSize
		if end > len(jobs) {
			end = len(jobs)
		}

		if start > 0 && e.opts.BatchDelay > 0 {
			if err := sleep(ctx, e.opts.BatchDelay); err != nil {
				for _, job := range jobs[start:] {
					outcomes[job.index] = outcome{err: err}
				}
				return
			}
		}

		var wg sync.WaitGroup
		for _, job := range jobs[start:end] {
			wg.Add(1)
			go func(job updateJob) {
				defer wg.Done()

				err := e.adGroups.UpdateAdGroup(ctx, token, adsClientID, job.adGroup.ID, job.update)
				if err != nil {
					log.FromContext(ctx).WithFields(logrus.Fields{
						"ad_group_id": job.adGroup.ID,
						"error":       err,
					}).Warn("failed to update ad group")
				}

				// each goroutine owns its own index
				outcomes[job.index] = outcome{attempted: true, err: err}
			}(job)
		}
		wg.Wait()
	}
}

// BuildUpdate computes the patch action applies to adGroup. It returns nil
// without error when the ad group lacks the field the action changes.
func BuildUpdate(action domain.Action, adGroup domain.AdGroup) (*domain.AdGroupUpdate, error) {
	switch action.Type {
	case domain.ActionTypeStatus:
		if action.SetStatus == nil {
			return nil, domain.ErrMissingStatusValue
		}
		status := action.SetStatus.Status
		return &domain.AdGroupUpdate{Status: &status}, nil

	case domain.ActionTypeCPC:
		if action.AdjustBid == nil {
			return nil, domain.ErrZeroChangeValue
		}
		if adGroup.Bidding == nil || adGroup.Bidding.MaxCpc == nil {
			return nil, nil
		}

		maxCpc, err := adjust(*adGroup.Bidding.MaxCpc, *action.AdjustBid)
		if err != nil {
			return nil, err
		}

		update := &domain.AdGroupUpdate{Bidding: &domain.Bidding{MaxCpc: maxCpc}}
		// the API rejects bidding patches that do not carry the budget
		if adGroup.Budget != nil {
			update.Budget = copyBudget(adGroup.Budget)
		}
		return update, nil

	case domain.ActionTypeBudget:
		if action.AdjustBudget == nil {
			return nil, domain.ErrZeroChangeValue
		}
		if adGroup.Budget == nil || adGroup.Budget.Daily == nil {
			return nil, nil
		}

		daily, err := adjust(*adGroup.Budget.Daily, *action.AdjustBudget)
		if err != nil {
			return nil, err
		}

		budget := &domain.Budget{Daily: daily}
		if adGroup.Budget.Total != nil {
			total := *adGroup.Budget.Total
			budget.Total = &total
		}
		return &domain.AdGroupUpdate{Budget: budget}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownActionType, action.Type)
	}
}

func adjust(current domain.Money, adjustment domain.Adjustment) (*domain.Money, error) {
	amount, err := utils.ParseAmount(current.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, current.Amount)
	}

	newAmount := NewAmount(amount, adjustment.Value, adjustment.Mode)
	formatted := utils.FormatAmount(newAmount)
	if newAmount <= 0 || formatted == "0.00" {
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveAmount, formatted)
	}

	return &domain.Money{Amount: formatted, Currency: current.Currency}, nil
}

func copyBudget(b *domain.Budget) *domain.Budget {
	out := &domain.Budget{}
	if b.Daily != nil {
		daily := *b.Daily
		out.Daily = &daily
	}
	if b.Total != nil {
		total := *b.Total
		out.Total = &total
	}
	return out
}

func filterAdGroups(adGroups []domain.AdGroup, ids []string) []domain.AdGroup {
	if len(ids) == 0 {
		return adGroups
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	filtered := make([]domain.AdGroup, 0, len(ids))
	for _, adGroup := range adGroups {
		if _, ok := wanted[adGroup.ID]; ok {
			filtered = append(filtered, adGroup)
		}
	}
	return filtered
}

func aggregate(candidates []domain.AdGroup, outcomes []outcome) domain.ExecutionResult {
	affected := make([]string, 0, len(candidates))
	var errs []string

	for i, o := range outcomes {
		switch {
		case o.err != nil:
			errs = append(errs, fmt.Sprintf("%s: %s", candidates[i].Name, o.err.Error()))
		case o.attempted:
			affected = append(affected, candidates[i].ID)
		}
	}

	result := domain.ExecutionResult{
		Success:            len(affected) > 0,
		AffectedAdGroupIDs: affected,
	}

	if len(errs) > 0 {
		joined := strings.Join(errs, "; ")
		result.Error = &joined
	}

	switch {
	case result.Success:
		result.Message = fmt.Sprintf("Updated %d ad groups", len(affected))
	case len(errs) > 0:
		result.Message = "Failed to update any ad groups: " + strings.Join(errs, ", ")
	default:
		result.Message = MessageNothingToChange
	}

	return result
}

// FailedResult is the result of a run that stopped before touching any ad group.
func FailedResult(err error) domain.ExecutionResult {
	msg := err.Error()
	return domain.ExecutionResult{
		Success:            false,
		Message:            MessageExecutionFailed,
		AffectedAdGroupIDs: []string{},
		Error:              &msg,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
