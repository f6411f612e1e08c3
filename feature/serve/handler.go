package serve

import (
	"strconv"

	"techtree/core/logger"
	"techtree/core/server"
	"techtree/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog API.
type Handler struct {
	service *Service
	cfg     server.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, cfg server.Config) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// RegisterRoutes registers the catalog API routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Get("/vehicles", h.HandleListVehicles)
	group.Get("/vehicles/:id", h.HandleGetVehicle)
	group.Get("/dependencies", h.HandleListDependencies)
	group.Get("/ranks", h.HandleListRanks)
}

// vehicleDTO mirrors catalog.VehicleRecord with wire-friendly names.
// Optional attributes serialize as null.
type vehicleDTO struct {
	InternalID     string   `json:"internal_id"`
	Country        string   `json:"country"`
	Rank           int      `json:"rank"`
	TierRow        int      `json:"tier_row"`
	TierColumn     int      `json:"tier_column"`
	ResearchCostRp *int64   `json:"research_cost_rp"`
	PurchaseCostSl *int64   `json:"purchase_cost_sl"`
	BattleRating   *float64 `json:"battle_rating"`
	NameRu         *string  `json:"name_ru"`
	NameEn         *string  `json:"name_en"`
	Premium        bool     `json:"premium"`
}

type edgeDTO struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
}

type rankDTO struct {
	Country          string `json:"country"`
	Rank             int    `json:"rank"`
	RequiredVehicles *int64 `json:"required_vehicles"`
	RequiredPoints   *int64 `json:"required_points"`
}

func toVehicleDTO(v catalog.VehicleRecord) vehicleDTO {
	return vehicleDTO{
		InternalID:     v.InternalID,
		Country:        v.Country,
		Rank:           v.Rank,
		TierRow:        v.TierRow,
		TierColumn:     v.TierColumn,
		ResearchCostRp: v.ResearchCostRp,
		PurchaseCostSl: v.PurchaseCostSl,
		BattleRating:   v.BattleRating,
		NameRu:         v.NameRu,
		NameEn:         v.NameEn,
		Premium:        v.Premium,
	}
}

func toEdgeDTOs(edges []catalog.DependencyEdge) []edgeDTO {
	out := make([]edgeDTO, 0, len(edges))
	for _, e := range edges {
		out = append(out, edgeDTO{FromID: e.FromID, ToID: e.ToID})
	}
	return out
}

// HandleListVehicles returns the vehicles matching the query filters
// (country, rank, premium).
func (h *Handler) HandleListVehicles(c *fiber.Ctx) error {
	country := c.Query("country")
	rank := c.QueryInt("rank")

	var premium *bool
	if raw := c.Query("premium"); raw != "" {
		p, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "premium must be a boolean",
			})
		}
		premium = &p
	}

	vehicles := h.service.ListVehicles(country, rank, premium)
	out := make([]vehicleDTO, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleDTO(v))
	}
	c.Set(fiber.HeaderCacheControl, h.cfg.CacheControl())
	return c.JSON(fiber.Map{"run_id": h.service.RunID(), "vehicles": out})
}

// HandleGetVehicle returns one vehicle plus its unlock prerequisites.
func (h *Handler) HandleGetVehicle(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	v, ok := h.service.GetVehicle(id)
	if !ok {
		l.Debug("vehicle not found", zap.String("id", id))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown vehicle id",
		})
	}

	c.Set(fiber.HeaderCacheControl, h.cfg.CacheControl())
	return c.JSON(fiber.Map{
		"vehicle":       toVehicleDTO(v),
		"prerequisites": toEdgeDTOs(h.service.Prerequisites(id)),
	})
}

// HandleListDependencies returns the unlock edges, optionally filtered by
// from/to endpoints.
func (h *Handler) HandleListDependencies(c *fiber.Ctx) error {
	edges := h.service.ListEdges(c.Query("from"), c.Query("to"))
	c.Set(fiber.HeaderCacheControl, h.cfg.CacheControl())
	return c.JSON(fiber.Map{"dependencies": toEdgeDTOs(edges)})
}

// HandleListRanks returns the rank gates, optionally for one country.
func (h *Handler) HandleListRanks(c *fiber.Ctx) error {
	reqs := h.service.ListRankRequirements(c.Query("country"))
	out := make([]rankDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, rankDTO{
			Country:          r.Country,
			Rank:             r.Rank,
			RequiredVehicles: r.RequiredVehicles,
			RequiredPoints:   r.RequiredPoints,
		})
	}
	c.Set(fiber.HeaderCacheControl, h.cfg.CacheControl())
	return c.JSON(fiber.Map{"ranks": out})
}
