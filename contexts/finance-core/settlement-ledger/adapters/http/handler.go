package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"tribunal/contexts/finance-core/settlement-ledger/application"
	"tribunal/contexts/finance-core/settlement-ledger/domain/entities"
	httptransport "tribunal/contexts/finance-core/settlement-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// TransferHandler godoc
// @Summary Transfer between accounts
// @Description Atomically debits the source and credits the destination. The destination account is created on first receipt.
// @Tags ledger
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay-safe retry key"
// @Param request body httptransport.TransferRequest true "Transfer payload"
// @Success 200 {object} httptransport.TransferResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/ledger/v1/transfers [post]
func (h Handler) TransferHandler(
	ctx context.Context,
	idempotencyKey string,
	req httptransport.TransferRequest,
) (httptransport.TransferResponse, error) {
	transfer, replayed, err := h.Service.Transfer(ctx, idempotencyKey, req.FromAccount, req.ToAccount, req.Amount, req.Reason)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	return httptransport.TransferResponse{
		Transfer: mapTransfer(transfer),
		Replayed: replayed,
	}, nil
}

// CreditHandler godoc
// @Summary Credit an account
// @Tags ledger
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay-safe retry key"
// @Param account_id path string true "Account id"
// @Param request body httptransport.CreditRequest true "Credit payload"
// @Success 200 {object} httptransport.CreditResponse
// @Router /api/ledger/v1/accounts/{account_id}/credit [post]
func (h Handler) CreditHandler(
	ctx context.Context,
	idempotencyKey string,
	accountID string,
	req httptransport.CreditRequest,
) (httptransport.CreditResponse, error) {
	account, replayed, err := h.Service.Credit(ctx, idempotencyKey, accountID, req.Amount)
	if err != nil {
		return httptransport.CreditResponse{}, err
	}
	return httptransport.CreditResponse{
		Account:  mapAccount(account),
		Replayed: replayed,
	}, nil
}

func (h Handler) BalanceHandler(ctx context.Context, accountID string) (httptransport.AccountDTO, error) {
	account, err := h.Service.Balance(ctx, accountID)
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return mapAccount(account), nil
}

func (h Handler) HistoryHandler(ctx context.Context, accountID string, limit int) (httptransport.HistoryResponse, error) {
	transfers, err := h.Service.History(ctx, accountID, limit)
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}
	items := make([]httptransport.TransferDTO, 0, len(transfers))
	for _, transfer := range transfers {
		items = append(items, mapTransfer(transfer))
	}
	return httptransport.HistoryResponse{Items: items}, nil
}

func (h Handler) SettlementsHandler(ctx context.Context, limit int) (httptransport.SettlementsResponse, error) {
	settlements, err := h.Service.Settlements(ctx, limit)
	if err != nil {
		return httptransport.SettlementsResponse{}, err
	}
	items := make([]httptransport.SettlementDTO, 0, len(settlements))
	for _, settlement := range settlements {
		items = append(items, httptransport.SettlementDTO{
			AuditID:       settlement.AuditID,
			EventID:       settlement.EventID,
			DisputeID:     settlement.DisputeID,
			Outcome:       settlement.Outcome,
			RewardsPaid:   settlement.RewardsPaid,
			PayoutsFailed: settlement.PayoutsFailed,
			TotalPaid:     settlement.TotalPaid,
			RecordedAt:    settlement.RecordedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.SettlementsResponse{Items: items}, nil
}

func mapTransfer(transfer entities.TransferRecord) httptransport.TransferDTO {
	return httptransport.TransferDTO{
		TransferID:    transfer.TransferID,
		FromAccount:   transfer.FromAccount,
		ToAccount:     transfer.ToAccount,
		Amount:        transfer.Amount,
		Reason:        transfer.Reason,
		TransferredAt: transfer.TransferredAt.UTC().Format(time.RFC3339),
	}
}

func mapAccount(account entities.Account) httptransport.AccountDTO {
	return httptransport.AccountDTO{
		AccountID: account.AccountID,
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
