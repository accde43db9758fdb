package dto

import "github.com/awqafio/waqf_ledger/internal/core/domain"

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Nature    string `json:"nature"`
}

// ListAccountsResponse is the postable account directory payload.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its DTO.
func ToAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: account.AccountID,
		Code:      account.Code,
		Name:      account.Name,
		Type:      string(account.Type),
		Nature:    string(account.Nature),
	}
}

// ToAccountResponses converts a slice of domain.Account to DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = ToAccountResponse(account)
	}
	return responses
}
