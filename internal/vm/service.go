package vm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/commission"
	"github.com/noah-isme/sales-commission/internal/common"
	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
	"github.com/noah-isme/sales-commission/internal/obs"
	"github.com/noah-isme/sales-commission/internal/order"
)

// Component product names priced onto VM lines.
const (
	ProductCPU  = "CPU vCore"
	ProductRAM  = "RAM GB"
	ProductDisk = "Disco GB"
)

// BackupProductNames are tried in order; the first is spelled with an en dash.
var BackupProductNames = []string{"Backup – puntos extra", "Backup - puntos extra"}

// DefaultBackupPoints is used when a configuration omits backup points.
const DefaultBackupPoints = 5

// CodeMissingProducts is returned when a component product is not in the catalogue.
const CodeMissingProducts = "MISSING_PRODUCTS"

// Config describes one virtual machine.
type Config struct {
	VCPUs        int  `json:"vcpus" validate:"gt=0"`
	RAMGB        int  `json:"ram_gb" validate:"gt=0"`
	DiskGB       int  `json:"disk_gb" validate:"gt=0"`
	BackupPoints *int `json:"backup_extra_points" validate:"omitempty,gte=0"`
}

// Result is returned by Apply.
type Result struct {
	Flavor       string      `json:"flavor"`
	SizeLabel    string      `json:"size_label"`
	SectionTitle string      `json:"section_title"`
	Order        order.Order `json:"order"`
}

// Mutator applies a change to a locked order and recomputes it.
type Mutator interface {
	Mutate(ctx context.Context, id uuid.UUID, fn func(q order.Querier, row dbgen.SaleOrder) error) (order.Order, error)
}

// Service appends VM component blocks to quotations.
type Service struct {
	orders Mutator
	logger zerolog.Logger
}

// NewService constructs a VM configurator.
func NewService(orders Mutator, logger zerolog.Logger) *Service {
	return &Service{orders: orders, logger: logger}
}

type componentQty struct {
	product dbgen.Product
	qty     int
}

type components struct {
	cpu, ram, disk dbgen.Product
	backup         *dbgen.Product
}

// Apply adds a "[VM] <flavor>" section followed by the CPU, RAM, disk and
// optional backup lines, then re-syncs and recomputes the order.
func (s *Service) Apply(ctx context.Context, orderID uuid.UUID, cfg Config) (Result, error) {
	if err := commission.Validator().Struct(cfg); err != nil {
		return Result{}, common.Validation("vcpus, ram_gb and disk_gb must be positive and backup points non-negative", err)
	}
	points := DefaultBackupPoints
	if cfg.BackupPoints != nil {
		points = *cfg.BackupPoints
	}
	flavorName := SuggestFlavor(cfg.VCPUs, cfg.RAMGB)
	res := Result{Flavor: flavorName, SizeLabel: SizeLabel(cfg.VCPUs, cfg.RAMGB)}

	out, err := s.orders.Mutate(ctx, orderID, func(q order.Querier, row dbgen.SaleOrder) error {
		parts, err := loadComponents(ctx, q)
		if err != nil {
			return err
		}
		title, err := uniqueSectionTitle(ctx, q, row.ID, flavorName)
		if err != nil {
			return err
		}
		res.SectionTitle = title

		maxSeq, err := q.MaxOrderLineSequence(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("max line sequence: %w", err)
		}
		seq := maxSeq + 10
		if _, err := q.CreateOrderLine(ctx, dbgen.CreateOrderLineParams{
			OrderID:     row.ID,
			Sequence:    seq,
			DisplayType: pgtype.Text{String: order.DisplaySection, Valid: true},
			Name:        sectionName(title),
		}); err != nil {
			return fmt.Errorf("create vm section: %w", err)
		}
		lines := []componentQty{
			{parts.cpu, cfg.VCPUs},
			{parts.ram, cfg.RAMGB},
			{parts.disk, cfg.DiskGB},
		}
		if parts.backup != nil && points > 0 {
			lines = append(lines, componentQty{*parts.backup, points})
		}
		for _, l := range lines {
			seq++
			if _, err := q.CreateOrderLine(ctx, componentLine(row.ID, seq, l.product, l.qty)); err != nil {
				return fmt.Errorf("create vm line %s: %w", l.product.Name, err)
			}
		}
		if _, err := q.SyncOrderAmountUntaxed(ctx, row.ID); err != nil {
			return fmt.Errorf("sync amount untaxed: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	res.Order = out
	logger := obs.LoggerWithTrace(ctx, s.logger)
	logger.Info().
		Str("order_id", orderID.String()).
		Str("flavor", flavorName).
		Str("section", res.SectionTitle).
		Msg("vm configuration applied")
	return res, nil
}

func loadComponents(ctx context.Context, q order.Querier) (components, error) {
	var (
		parts   components
		missing []string
	)
	required := []struct {
		name string
		dst  *dbgen.Product
	}{
		{ProductCPU, &parts.cpu},
		{ProductRAM, &parts.ram},
		{ProductDisk, &parts.disk},
	}
	for _, r := range required {
		p, err := q.GetProductByName(ctx, r.name)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			missing = append(missing, r.name)
		case err != nil:
			return components{}, fmt.Errorf("load product %s: %w", r.name, err)
		default:
			*r.dst = p
		}
	}
	if len(missing) > 0 {
		return components{}, common.NewAppError(CodeMissingProducts,
			fmt.Sprintf("Missing base products: '%s', '%s', '%s'", ProductCPU, ProductRAM, ProductDisk),
			http.StatusUnprocessableEntity, nil).WithDetails(map[string]any{"missing": missing})
	}
	for _, name := range BackupProductNames {
		p, err := q.GetProductByName(ctx, name)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return components{}, fmt.Errorf("load product %s: %w", name, err)
		}
		parts.backup = &p
		break
	}
	return parts, nil
}

// uniqueSectionTitle suffixes the flavor with -<n+1> when n sections for it exist already.
func uniqueSectionTitle(ctx context.Context, q order.Querier, orderID pgtype.UUID, base string) (string, error) {
	n, err := q.CountOrderSectionsWithPrefix(ctx, dbgen.CountOrderSectionsWithPrefixParams{
		OrderID: orderID,
		Prefix:  sectionName(base),
	})
	if err != nil {
		return "", fmt.Errorf("count vm sections: %w", err)
	}
	if n == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, n+1), nil
}

func componentLine(orderID pgtype.UUID, seq int32, p dbgen.Product, qty int) dbgen.CreateOrderLineParams {
	quantity := float64(qty)
	subtotal := commission.LineInput{UnitPrice: p.ListPrice, Quantity: quantity}.LineSubtotal()
	return dbgen.CreateOrderLineParams{
		OrderID:      orderID,
		Sequence:     seq,
		Name:         p.Name,
		ProductID:    p.ID,
		Quantity:     quantity,
		UnitPrice:    p.ListPrice,
		UnitCost:     pgtype.Float8{Float64: p.StandardPrice, Valid: true},
		LineSubtotal: subtotal,
	}
}
