package api

import "fmt"

// --- Product Methods ---

func (c *Client) ListProducts() ([]Product, error) {
	data, err := c.get("/products")
	if err != nil {
		return nil, err
	}
	return decodeList[Product](data)
}

func (c *Client) CreateProduct(input ProductInput) (*Product, error) {
	data, err := c.post("/products", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Product](data)
}

// UpdateProduct replaces the writable fields of a product. The response
// body is not used beyond its status.
func (c *Client) UpdateProduct(id string, input ProductInput) error {
	_, err := c.put(fmt.Sprintf("/products/%s", id), input)
	return err
}

func (c *Client) DeleteProduct(id string) error {
	_, err := c.del(fmt.Sprintf("/products/%s", id))
	return err
}
