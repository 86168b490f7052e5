package httpapi

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ryota0051/033-web-api/internal/series"
	"github.com/ryota0051/033-web-api/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success"})
	})

	app.Get("/locations", func(c *fiber.Ctx) error {
		locs, err := service.Locations()
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(fiber.Map{"available_locations": locs})
	})

	app.Get("/columns", func(c *fiber.Ctx) error {
		cols, err := service.Columns()
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(fiber.Map{"available_columns": cols})
	})

	loc := app.Group("/location/:location")

	loc.Get("/columns", func(c *fiber.Ctx) error {
		var req locationParams
		if err := req.bind(c); err != nil {
			return toFiberError(err)
		}
		cols, err := service.LocationColumns(req.Location)
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(fiber.Map{"location": req.Location, "available_columns": cols})
	})

	loc.Get("/column/:column/date/:date", func(c *fiber.Ctx) error {
		var req seriesParams
		if err := req.bind(c); err != nil {
			return toFiberError(err)
		}

		res, err := service.Point(req.Location, req.Column, c.Params("date"))
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"location": res.Location,
			"date":     series.FormatTimestamp(res.Date),
			res.Column: res.Value,
		})
	})

	loc.Get("/column/:column/start/:start/end/:end", func(c *fiber.Ctx) error {
		var req seriesParams
		if err := req.bind(c); err != nil {
			return toFiberError(err)
		}

		res, err := service.Range(req.Location, req.Column, c.Params("start"), c.Params("end"))
		if err != nil {
			return toFiberError(err)
		}

		values := make(map[string]float64, len(res.Observations))
		for _, o := range res.Observations {
			values[series.FormatTimestamp(o.Date)] = o.Value
		}
		return c.JSON(fiber.Map{
			"location": res.Location,
			res.Column: values,
		})
	})

	loc.Get("/column/:column/start/:start/end/:end/agg/:agg", func(c *fiber.Ctx) error {
		var req aggregateParams
		if err := req.bind(c); err != nil {
			return toFiberError(err)
		}

		res, err := service.Aggregate(req.Location, req.Column, c.Params("start"), c.Params("end"), req.Agg)
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"location": res.Location,
			res.Key():  res.Value,
		})
	})
}

// toFiberError maps the query error taxonomy onto HTTP status codes.
func toFiberError(err error) error {
	var qe *series.QueryError
	if !errors.As(err, &qe) {
		return err
	}

	switch {
	case errors.Is(err, series.ErrInvalidFormat),
		errors.Is(err, series.ErrOutOfRange),
		errors.Is(err, series.ErrInvalidRange):
		return fiber.NewError(fiber.StatusBadRequest, qe.Message)
	case errors.Is(err, series.ErrNotFound),
		errors.Is(err, series.ErrUnknownAggregation):
		return fiber.NewError(fiber.StatusNotFound, qe.Message)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, qe.Message)
	}
}

// locationParams holds the path parameter identifying a location.
type locationParams struct {
	Location string `validate:"required,excludesall=/,startsnotwith=."`
}

func (p *locationParams) bind(c *fiber.Ctx) error {
	loc, err := pathParam(c, "location")
	if err != nil {
		return err
	}
	p.Location = loc

	if err := validate.Struct(p); err != nil {
		return &series.QueryError{Kind: series.ErrNotFound, Message: "location not found"}
	}
	return nil
}

// seriesParams identifies one column of one location.
type seriesParams struct {
	locationParams
	Column string `validate:"required"`
}

func (p *seriesParams) bind(c *fiber.Ctx) error {
	if err := p.locationParams.bind(c); err != nil {
		return err
	}
	col, err := pathParam(c, "column")
	if err != nil {
		return err
	}
	p.Column = col

	if err := validate.Struct(p); err != nil {
		return &series.QueryError{Kind: series.ErrNotFound, Message: "column not found"}
	}
	return nil
}

// aggregateParams adds the aggregation name.
type aggregateParams struct {
	seriesParams
	Agg string `validate:"required"`
}

func (p *aggregateParams) bind(c *fiber.Ctx) error {
	if err := p.seriesParams.bind(c); err != nil {
		return err
	}
	p.Agg = c.Params("agg")

	if err := validate.Struct(p); err != nil {
		return &series.QueryError{
			Kind:    series.ErrUnknownAggregation,
			Message: "aggregation func must be chosen from " + series.AggregationNames(),
		}
	}
	return nil
}

// pathParam returns an unescaped path parameter so that column names such
// as "mean temperature" can be requested as mean%20temperature.
func pathParam(c *fiber.Ctx, key string) (string, error) {
	v, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", &series.QueryError{Kind: series.ErrNotFound, Message: key + " not found"}
	}
	return v, nil
}
