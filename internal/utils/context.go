package utils

import "context"

type contextKey string

const (
	CustomerIDKey    contextKey = "customer_id"
	CustomerEmailKey contextKey = "email"
)

// SetCustomerContext sets the authenticated customer into context (called by middleware).
// The reconciler receives the customer id by parameter, never from ambient state.
func SetCustomerContext(ctx context.Context, id uint, email string) context.Context {
	ctx = context.WithValue(ctx, CustomerIDKey, id)
	ctx = context.WithValue(ctx, CustomerEmailKey, email)
	return ctx
}

// GetCustomerIDFromContext retrieves the customer id safely
func GetCustomerIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CustomerIDKey).(uint)
	return id, ok
}

func GetCustomerEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(CustomerEmailKey).(string)
	return email
}
