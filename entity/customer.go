package entity

import "strings"

// Customer is a store customer.
type Customer struct {
	*Object
}

// NewCustomer wraps props as a customer.
func NewCustomer(props *Properties, store Store) *Customer {
	return &Customer{Object: NewObject(ResourceCustomers, props, store)}
}

// Name returns "name", or the first and last names joined when it is empty.
func (c *Customer) Name() string {
	if s, ok := c.props.String("name"); ok && s != "" {
		return s
	}
	return strings.TrimSpace(c.FirstName() + " " + c.LastName())
}

func (c *Customer) FirstName() string {
	s, _ := c.props.String("first_name")
	return s
}

func (c *Customer) LastName() string {
	s, _ := c.props.String("last_name")
	return s
}

func (c *Customer) SetFirstName(name string) { c.Set("first_name", name) }

func (c *Customer) SetLastName(name string) { c.Set("last_name", name) }

func (c *Customer) Email() string {
	s, _ := c.props.String("email")
	return s
}

func (c *Customer) SetEmail(email string) { c.Set("email", email) }

// Code falls back to the legacy "code" key.
func (c *Customer) Code() string {
	s, _ := c.props.String("customer_code", "code")
	return s
}

// Balance falls back to the legacy "account_balance" key.
func (c *Customer) Balance() float64 {
	f, _ := c.props.Float("balance", "account_balance")
	return f
}
