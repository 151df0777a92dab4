package controllers

import (
	"time"

	"github.com/angelmondragon/bcf-portal/internal/batch"
	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/internal/configurator"
	"github.com/angelmondragon/bcf-portal/internal/orders"
	"github.com/angelmondragon/bcf-portal/internal/workflow"
	"github.com/angelmondragon/bcf-portal/pkg/enums"
	"github.com/angelmondragon/bcf-portal/pkg/money"
)

type productResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	UnitPrice   string `json:"unit_price"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Stock       string `json:"stock"`
	Orderable   bool   `json:"orderable"`
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		UnitPrice:   money.Format(p.UnitPrice),
		Category:    p.Category,
		Description: p.Description,
		Stock:       p.Stock.String(),
		Orderable:   p.Stock.Orderable(),
	}
}

type selectionResponse struct {
	MediaRefs    []int                  `json:"media_refs"`
	Style        *enums.BudStyle        `json:"style"`
	Theme        *enums.BackgroundTheme `json:"theme"`
	Typography   *enums.Typography      `json:"typography"`
	Packaging    *enums.PackagingFormat `json:"packaging"`
	Quantity     int                    `json:"quantity"`
	ResellerMark *string                `json:"reseller_mark"`
}

func toSelectionResponse(s configurator.Selection) selectionResponse {
	return selectionResponse{
		MediaRefs:    s.MediaRefs,
		Style:        s.Style,
		Theme:        s.Theme,
		Typography:   s.Typography,
		Packaging:    s.Packaging,
		Quantity:     s.Quantity,
		ResellerMark: s.ResellerMarkRef,
	}
}

type sessionResponse struct {
	Product      productResponse   `json:"product"`
	Step         enums.ConfigStep  `json:"step"`
	StepIndex    int               `json:"step_index"`
	StepCount    int               `json:"step_count"`
	Selection    selectionResponse `json:"selection"`
	PricePreview string            `json:"price_preview"`
	Open         bool              `json:"open"`
	Annotation   string            `json:"annotation,omitempty"`
}

func toSessionResponse(s configurator.Snapshot, annotation string) sessionResponse {
	return sessionResponse{
		Product:      toProductResponse(s.Product),
		Step:         s.Step,
		StepIndex:    s.StepIndex,
		StepCount:    len(enums.ConfigSteps()),
		Selection:    toSelectionResponse(s.Selection),
		PricePreview: money.Format(s.PricePreview),
		Open:         s.Open,
		Annotation:   annotation,
	}
}

type mediaToggleResponse struct {
	configurator.MediaToggle
	Session sessionResponse `json:"session"`
}

type itemResponse struct {
	ID          string            `json:"id"`
	Product     productResponse   `json:"product"`
	Selection   selectionResponse `json:"selection"`
	LineTotal   string            `json:"line_total"`
	CommittedAt time.Time         `json:"committed_at"`
}

func toItemResponse(item batch.ConfiguredItem) itemResponse {
	return itemResponse{
		ID:          item.AssignedID.String(),
		Product:     toProductResponse(item.Product),
		Selection:   toSelectionResponse(item.Selection),
		LineTotal:   money.Multiply(item.Product.UnitPrice, item.Selection.Quantity).StringFixed(2),
		CommittedAt: item.CommittedAt,
	}
}

type batchResponse struct {
	Items         []itemResponse `json:"items"`
	ItemCount     int            `json:"item_count"`
	Total         string         `json:"total"`
	ExtendedTotal string         `json:"extended_total"`
}

func toBatchResponse(view workflow.BatchView) batchResponse {
	items := make([]itemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, toItemResponse(item))
	}
	return batchResponse{
		Items:         items,
		ItemCount:     len(items),
		Total:         money.Format(view.Total),
		ExtendedTotal: money.Format(view.ExtendedTotal),
	}
}

type orderResponse struct {
	ID        string            `json:"id"`
	Date      string            `json:"date"`
	Status    enums.OrderStatus `json:"status"`
	Total     string            `json:"total"`
	Items     int               `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}

func toOrderResponse(r orders.OrderRecord) orderResponse {
	return orderResponse{
		ID:        r.ID,
		Date:      r.Date.Format(time.DateOnly),
		Status:    r.Status,
		Total:     money.Format(r.Total),
		Items:     r.Items,
		CreatedAt: r.CreatedAt,
	}
}

type orderHistoryResponse struct {
	Orders     []orderResponse `json:"orders"`
	Count      int             `json:"count"`
	TotalSpent string          `json:"total_spent"`
}

func toOrderHistoryResponse(records []orders.OrderRecord) orderHistoryResponse {
	out := make([]orderResponse, 0, len(records))
	totals := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, toOrderResponse(r))
		totals = append(totals, r.Total)
	}
	return orderHistoryResponse{
		Orders:     out,
		Count:      len(out),
		TotalSpent: money.Sum(totals...).StringFixed(2),
	}
}
