package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/restsoft-app/restsoft-pos/models"
)

// Client talks to the upstream REST API. It is the only place that
// knows the wire paths and payload shapes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var dtos []productDTO
	if err := c.getJSON(ctx, "/productos", &dtos); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toModel())
	}
	return products, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var dtos []categoryDTO
	if err := c.getJSON(ctx, "/categorias", &dtos); err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, d.toModel())
	}
	return categories, nil
}

func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (uint, error) {
	var resp struct {
		ProductoID uint `json:"producto_id"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/productos", req, &resp); err != nil {
		return 0, err
	}
	return resp.ProductoID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, req UpdateProductRequest) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/productos/%d", id), req, nil)
}

func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (uint, error) {
	var resp struct {
		CategoriaID uint `json:"categoria_id"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/categorias", req, &resp); err != nil {
		return 0, err
	}
	return resp.CategoriaID, nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var dtos []employeeDTO
	if err := c.getJSON(ctx, "/empleados", &dtos); err != nil {
		return nil, err
	}
	employees := make([]models.Employee, 0, len(dtos))
	for _, d := range dtos {
		employees = append(employees, d.toModel())
	}
	return employees, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (uint, error) {
	var resp struct {
		EmpleadoID uint `json:"empleado_id"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/empleados", req, &resp); err != nil {
		return 0, err
	}
	return resp.EmpleadoID, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id uint) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/empleados/%d", id), nil, nil)
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var dtos []orderDTO
	if err := c.getJSON(ctx, "/pedidos", &dtos); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toModel())
	}
	return orders, nil
}

// SalonOrders returns the enriched dine-in order view.
func (c *Client) SalonOrders(ctx context.Context) ([]SalonOrder, error) {
	var rows []SalonOrder
	if err := c.getJSON(ctx, "/pedidos_salon", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateOrder submits a composed order. The idempotency key travels as
// a header; the upstream may use it to spot duplicated retries.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*CreateOrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pedidos", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError(resp)
	}

	var out CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id uint) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/pedidos/%d", id), nil, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

// responseError extracts FastAPI's {"detail": "..."} message when there
// is one and keeps the raw body otherwise.
func responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", strings.TrimSpace(string(raw)), ErrNotFound)
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail != "" {
		msg = detail.Detail
	}
	return &SubmissionError{StatusCode: resp.StatusCode, Message: msg}
}
