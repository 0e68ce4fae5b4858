package api

// --- Account ---

// Account status values as stored by the backend.
const (
	AccountActive   = "Active"
	AccountInactive = "Inactive"
)

// Joined method values as stored by the backend.
const (
	JoinedInvited = "INVITED"
	JoinedSelf    = "SELF"
)

// Account is an organization member account.
type Account struct {
	ID           string `json:"id"`
	AccountID    string `json:"account_id"`
	Name         string `json:"account_name"`
	Email        string `json:"account_email"`
	Status       string `json:"account_status"`
	ARN          string `json:"account_arn"`
	JoinedMethod string `json:"joined_method"`
	JoinedAt     string `json:"joined_timestamp"`
}

// AccountInput defines the writable account fields.
type AccountInput struct {
	AccountID    string `json:"account_id"`
	Name         string `json:"account_name"`
	Email        string `json:"account_email"`
	Status       string `json:"account_status"`
	ARN          string `json:"account_arn"`
	JoinedMethod string `json:"joined_method"`
	JoinedAt     string `json:"joined_timestamp,omitempty"`
}

// --- Product ---

// Product is a managed product owned by the organization.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Position    string `json:"position"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProductInput defines the writable product fields. Timestamps are
// backend-owned on create and client-stamped on update.
type ProductInput struct {
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

// --- Link ---

// Link is a persisted product-account association row.
type Link struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	AccountID string `json:"account_id"`
}

// LinkView is a link denormalized with the joined account's display fields,
// as returned by the view_product_accounts endpoint.
type LinkView struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	AccountID     string `json:"account_id"`
	AccountName   string `json:"account_name"`
	AccountEmail  string `json:"account_email"`
	AccountStatus string `json:"account_status"`
}
