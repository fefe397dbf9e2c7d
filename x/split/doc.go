/*
Package split implements the remittance split ledger.

A single, global split configuration divides every remittance between four
buckets: spending, savings, bills and insurance. The configuration is a set of
four whole percentages that must add up to exactly 100. It is stored under the
fixed key "SPLIT". Until it is first initialized, the default split of
50/30/15/5 applies.

Calculating a split never loses or creates value: the first three buckets are
truncated toward zero and insurance receives whatever is left, so the four
amounts always add up to the total.
*/
package split
