package api

import "fmt"

// --- Account Methods ---

func (c *Client) ListAccounts() ([]Account, error) {
	data, err := c.get("/accounts")
	if err != nil {
		return nil, err
	}
	return decodeList[Account](data)
}

func (c *Client) CreateAccount(input AccountInput) (*Account, error) {
	data, err := c.post("/accounts", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Account](data)
}

// UpdateAccount replaces the writable fields of an account. The response
// body is not used beyond its status.
func (c *Client) UpdateAccount(id string, input AccountInput) error {
	_, err := c.put(fmt.Sprintf("/accounts/%s", id), input)
	return err
}

func (c *Client) DeleteAccount(id string) error {
	_, err := c.del(fmt.Sprintf("/accounts/%s", id))
	return err
}
