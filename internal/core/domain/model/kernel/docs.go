// Package kernel provides the primitives shared by every aggregate of the
// manufacturing domain:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Date: a calendar day for schedules, ETAs and capacity lookups
//   - Actor and Role: the acting user and the permissions their role grants
package kernel
