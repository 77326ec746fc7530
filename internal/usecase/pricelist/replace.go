package pricelist

import (
	"context"

	"github.com/nailroom/salon-scheduler/internal/audit"
	domain "github.com/nailroom/salon-scheduler/internal/domain/pricelist"
	"github.com/nailroom/salon-scheduler/internal/httperr"
	"github.com/nailroom/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ReplaceInput struct {
	MasterID uint
	Entries  []domain.Entry
}

// ======================================================
// USE CASE
// ======================================================

// Replace implements the full-replace strategy: the submitted selection
// becomes the master's entire price list, whatever was there before is gone.
type Replace struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplace(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Replace {
	return &Replace{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Replace) Execute(
	ctx context.Context,
	in ReplaceInput,
) ([]models.PriceList, error) {

	master, err := uc.repo.GetMaster(ctx, in.MasterID)
	if err != nil {
		return nil, httperr.ErrBusiness("master_not_found")
	}
	if master.Role != models.RoleMaster {
		return nil, httperr.ErrBusiness("master_not_found")
	}

	if len(in.Entries) > 0 {
		ids := make([]uint, 0, len(in.Entries))
		for _, e := range in.Entries {
			ids = append(ids, e.ServiceID)
		}

		count, err := uc.repo.CountServices(ctx, ids)
		if err != nil {
			return nil, err
		}
		if count != int64(len(uniq(ids))) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}

	rows, err := uc.repo.ReplaceForMaster(ctx, in.MasterID, in.Entries)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.MasterID,
		Action:   "price_list_replaced",
		Entity:   "price_list",
		Metadata: map[string]any{"entries": len(in.Entries)},
	})

	return rows, nil
}

func uniq(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
