// Package credits provides the credits ledger domain model.
//
// Credits are a prepaid balance an account holds; a courier must have at
// least an order's total price in credits before being allowed to take the
// order. The package includes:
//   - Balance: The aggregate root maintaining a single account's amount
//
// Key business rules:
//   - Amounts are fixed-point decimals with two fractional digits
//   - The amount is never negative; debits that would cross zero fail
//     with an insufficient-funds error
//   - A single credit or debit operation is capped at MaxOperationAmount
//   - One balance per owner, created lazily on first need
package credits
