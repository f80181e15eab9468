package balance

import (
	"sort"

	"splitmate/pkg/money"
)

// Plan reduces a balance sheet to a short list of transfers that settles all
// debts: greedy matching of the largest debtor against the largest creditor.
// The true minimum transfer count is NP-hard to find; this approximation is
// bounded by n-1 transfers for n non-zero balances and, because both sorts
// are stable over insertion order, deterministic for identical input.
//
// The returned residual is the total unmatched magnitude left after one side
// runs out. It is zero whenever the balances sum to zero; anything else
// signals an accounting inconsistency upstream, not a planning failure.
func Plan(balances []UserBalance) ([]Transfer, money.Cents) {
	var creditors, debtors []UserBalance
	for _, b := range balances {
		switch {
		case b.Amount > 0:
			creditors = append(creditors, b)
		case b.Amount < 0:
			debtors = append(debtors, UserBalance{UserID: b.UserID, Amount: -b.Amount})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Amount > creditors[j].Amount
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Amount > debtors[j].Amount
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].Amount
		if creditors[j].Amount < amount {
			amount = creditors[j].Amount
		}

		if amount > 0 {
			transfers = append(transfers, Transfer{
				From:   debtors[i].UserID,
				To:     creditors[j].UserID,
				Amount: amount,
			})
		}

		debtors[i].Amount -= amount
		creditors[j].Amount -= amount
		if debtors[i].Amount == 0 {
			i++
		}
		if creditors[j].Amount == 0 {
			j++
		}
	}

	var residual money.Cents
	for ; i < len(debtors); i++ {
		residual += debtors[i].Amount
	}
	for ; j < len(creditors); j++ {
		residual += creditors[j].Amount
	}

	return transfers, residual
}
