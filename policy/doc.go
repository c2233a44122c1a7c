// Package policy maps classifications onto recovery plans. The resolver's
// table is the single source of truth for retry behavior: no other component
// hardcodes retry counts, delays or side effects.
//
// Every category in the taxonomy has an entry, so resolution is total. The
// classification's severity acts as a secondary modifier: critical always
// forces user notification regardless of the category default.
package policy
