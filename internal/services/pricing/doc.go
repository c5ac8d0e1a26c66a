/*
Package pricing resolves platform fee percentages and splits sale amounts between the
platform and the teacher.

Fee rules live at three scopes. Resolution walks them from most to least specific and the
first active match wins:

	ITEM (lesson, package or course) -> TEACHER -> GLOBAL -> configured fallback

When several active rules share one scope and key, the most recently updated one wins and
ties fall back to the lowest rule ID.

Usage:

	svc := pricing.NewService(repo, auditRecorder, pricing.DefaultConfig(), metrics, logger)

	// Administrative writes
	rule, err := svc.SaveRule(ctx, pricing.Admin{ID: "admin1", Name: "Ada"}, pricing.RuleInput{
	    Scope:              models.FeeScopeTeacher,
	    TeacherID:          "t1",
	    PlatformFeePercent: decimal.NewFromInt(10),
	})

	// Checkout
	quote, err := svc.Quote(ctx, pricing.QuoteRequest{
	    TeacherID:   "t1",
	    ItemID:      "c1",
	    ItemType:    models.ItemTypeCourse,
	    GrossAmount: decimal.RequireFromString("99.99"),
	})

Rounding:

The platform fee is rounded half-up to the currency minor unit (two decimal places unless
configured otherwise). The net amount is the gross minus the rounded fee, so fee and net
always add back to the gross exactly.

Error Handling:

  - ErrInvalidPercentage: percent outside [0, 100] on write or split
  - ErrInvalidAmount: negative gross amount
  - ErrInvalidScope: unknown scope or key fields that do not match the scope
  - ErrRuleNotFound: deactivating an unknown rule
  - ErrCorruptRuleData: a stored rule selected during resolution carries an invalid percent

Audit:

Every rule write emits an AuditLog through the AuditRecorder. A failing recorder is logged
and counted but does not undo the write.
*/
package pricing
