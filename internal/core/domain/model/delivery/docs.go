// Package delivery provides the Delivery aggregate: a courier's claim on an
// order, created once per order at take time.
//
// The package includes:
//   - Delivery: The aggregate root binding courier, client, and order,
//     with the courier's last reported position
//   - Tracking codes: short unique human-readable identifiers assigned
//     at creation (GenerateTrackingCode, ValidateTrackingCode)
//
// Key business rules:
//   - Only the assigned courier may mutate a delivery or advance the
//     associated order through delivery actions
//   - The current position is nil until the first report, then always a
//     validated coordinate pair
//   - Tracking code uniqueness is enforced by the storage layer; collisions
//     at generation time are resolved by retrying
package delivery
