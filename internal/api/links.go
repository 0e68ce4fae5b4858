package api

import "fmt"

// --- Product-Account Link Methods ---

// ListProductLinks returns the raw link rows for a product.
func (c *Client) ListProductLinks(productID string) ([]Link, error) {
	data, err := c.get(buildQuery("/product_accounts", QueryParams{"product_id": productID}))
	if err != nil {
		return nil, err
	}
	return decodeList[Link](data)
}

// ListProductLinkViews returns links for a product denormalized with
// account display fields.
func (c *Client) ListProductLinkViews(productID string) ([]LinkView, error) {
	data, err := c.get(buildQuery("/view_product_accounts", QueryParams{"product_id": productID}))
	if err != nil {
		return nil, err
	}
	return decodeList[LinkView](data)
}

func (c *Client) CreateLink(productID, accountID string) (*Link, error) {
	body := map[string]string{
		"product_id": productID,
		"account_id": accountID,
	}
	data, err := c.post("/product_accounts", body)
	if err != nil {
		return nil, err
	}
	return decodeOne[Link](data)
}

func (c *Client) DeleteLink(id string) error {
	_, err := c.del(fmt.Sprintf("/product_accounts/%s", id))
	return err
}
