package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const swaggerInstance = "manufacturing"

//go:embed openapi.yaml
var contract []byte

var registerDocsOnce sync.Once

// LoadContract parses and validates the embedded API contract.
func LoadContract(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(contract)
	if err != nil {
		return nil, fmt.Errorf("load api contract: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate api contract: %w", err)
	}
	// Match requests regardless of the host they arrive on.
	doc.Servers = nil
	return doc, nil
}

// ValidateRequests rejects requests that do not match the contract with a
// 400. Requests for paths the contract does not describe fall through to
// echo's routing.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build contract router: %w", err)
	}
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return badRequest(c, err.Error())
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return badRequest(c, err.Error())
			}
			return next(c)
		}
	}, nil
}

type contractDocs struct {
	json string
}

func (d contractDocs) ReadDoc() string { return d.json }

// docsHandler serves swagger UI over the contract at /swagger/index.html.
func docsHandler(doc *openapi3.T) (echo.HandlerFunc, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode api contract: %w", err)
	}
	registerDocsOnce.Do(func() {
		swag.Register(swaggerInstance, contractDocs{json: string(raw)})
	})
	return echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)), nil
}

func health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
