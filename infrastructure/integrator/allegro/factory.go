package allegro

import (
	allegrodomain "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
)

func FactoryAdGroup(in allegrodomain.AdGroup) domain.AdGroup {
	out := domain.AdGroup{
		ID:         in.ID,
		Name:       in.Name,
		CampaignID: in.CampaignID,
		Status:     domain.AdGroupStatus(in.Status),
	}

	if in.Bidding != nil {
		out.Bidding = &domain.Bidding{MaxCpc: toMoney(in.Bidding.MaxCpc)}
	}
	if in.Budget != nil {
		out.Budget = &domain.Budget{
			Daily: toMoney(in.Budget.Daily),
			Total: toMoney(in.Budget.Total),
		}
	}

	return out
}

func FactoryAdGroupPatch(update domain.AdGroupUpdate) allegrodomain.AdGroupPatch {
	var patch allegrodomain.AdGroupPatch

	if update.Status != nil {
		status := string(*update.Status)
		patch.Status = &status
	}
	if update.Bidding != nil {
		patch.Bidding = &allegrodomain.Bidding{MaxCpc: fromMoney(update.Bidding.MaxCpc)}
	}
	if update.Budget != nil {
		patch.Budget = &allegrodomain.Budget{
			Daily: fromMoney(update.Budget.Daily),
			Total: fromMoney(update.Budget.Total),
		}
	}

	return patch
}

func toMoney(m *allegrodomain.Money) *domain.Money {
	if m == nil {
		return nil
	}
	return &domain.Money{Amount: m.Amount, Currency: m.Currency}
}

func fromMoney(m *domain.Money) *allegrodomain.Money {
	if m == nil {
		return nil
	}
	return &allegrodomain.Money{Amount: m.Amount, Currency: m.Currency}
}
