package api

import (
	"context"
	"net/http"
)

// Branch and service administration. All of these require the bearer token.

func (c *Client) Branches(ctx context.Context) ([]Branch, error) {
	var out struct {
		Branches []Branch `json:"branches"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/branches", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Branches, nil
}

func (c *Client) CreateBranch(ctx context.Context, name, address string) error {
	in := struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}{Name: name, Address: address}
	return c.do(ctx, http.MethodPost, "/admin/branches", nil, in, nil, true)
}

func (c *Client) DeleteBranch(ctx context.Context, branchID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/branches/"+branchID, nil, nil, nil, true)
}

func (c *Client) BranchBarbers(ctx context.Context, branchID string) ([]Barber, error) {
	var out struct {
		Barbers []Barber `json:"barbers"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/branches/"+branchID+"/barbers", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Barbers, nil
}

func (c *Client) AddBranchBarber(ctx context.Context, branchID, barberID string) error {
	in := struct {
		BarberID string `json:"barberId"`
	}{BarberID: barberID}
	return c.do(ctx, http.MethodPost, "/admin/branches/"+branchID+"/barbers", nil, in, nil, true)
}

func (c *Client) RemoveBranchBarber(ctx context.Context, branchID, barberID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/branches/"+branchID+"/barbers/"+barberID, nil, nil, nil, true)
}

func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var out struct {
		Services []Service `json:"services"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (c *Client) CreateService(ctx context.Context, in ServiceInput) error {
	return c.do(ctx, http.MethodPost, "/api/services", nil, in, nil, true)
}

func (c *Client) UpdateService(ctx context.Context, serviceID string, in ServiceInput) error {
	return c.do(ctx, http.MethodPut, "/api/services/"+serviceID, nil, in, nil, true)
}

func (c *Client) DeleteService(ctx context.Context, serviceID string) error {
	return c.do(ctx, http.MethodDelete, "/api/services/"+serviceID, nil, nil, nil, true)
}

func (c *Client) SetServiceStatus(ctx context.Context, serviceID, status string) error {
	in := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPut, "/api/services/"+serviceID+"/status", nil, in, nil, true)
}
