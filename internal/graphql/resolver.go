package graphql

import (
	"context"
	"errors"
	"fmt"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
)

// OrderService: операции, которые резолверы вызывают для каждого поля.
type OrderService interface {
	ListOrders(ctx context.Context) []domain.Order
	OrderByID(ctx context.Context, id string) (domain.Order, bool)
	PayOrder(ctx context.Context, id string) (domain.Order, error)
	ResetOrders(ctx context.Context) []domain.Order
}

// Resolver: корневой резолвер для Query и Mutation.
type Resolver struct {
	service OrderService
}

// NewResolver создаёт корневой резолвер поверх сервиса заказов.
func NewResolver(service OrderService) *Resolver {
	return &Resolver{service: service}
}

type orderIDArgs struct {
	OrderID graphqlgo.ID
}

// Orders резолвит Query.orders.
func (r *Resolver) Orders(ctx context.Context) *[]*orderResolver {
	return wrapOrders(r.service.ListOrders(ctx))
}

// OrderByID резолвит Query.orderById; отсутствие заказа даёт null.
func (r *Resolver) OrderByID(ctx context.Context, args orderIDArgs) *orderResolver {
	order, ok := r.service.OrderByID(ctx, string(args.OrderID))
	if !ok {
		return nil
	}
	return &orderResolver{order: order}
}

// PayOrder резолвит Mutation.payOrder.
func (r *Resolver) PayOrder(ctx context.Context, args orderIDArgs) (*orderResolver, error) {
	if mutationsForbidden(ctx) {
		return nil, errMutationOverGET
	}
	id := string(args.OrderID)
	order, err := r.service.PayOrder(ctx, id)
	if err != nil {
		if domain.IsOrderNotFound(err) {
			return nil, newNotFoundError(id)
		}
		return nil, err
	}
	return &orderResolver{order: order}, nil
}

// ResetOrders резолвит Mutation.resetOrders.
func (r *Resolver) ResetOrders(ctx context.Context) (*[]*orderResolver, error) {
	if mutationsForbidden(ctx) {
		return nil, errMutationOverGET
	}
	return wrapOrders(r.service.ResetOrders(ctx)), nil
}

func wrapOrders(orders []domain.Order) *[]*orderResolver {
	resolvers := make([]*orderResolver, 0, len(orders))
	for _, order := range orders {
		resolvers = append(resolvers, &orderResolver{order: order})
	}
	return &resolvers
}

// orderResolver резолвит поля типа Order из снимка заказа.
type orderResolver struct {
	order domain.Order
}

func (o *orderResolver) ID() graphqlgo.ID { return graphqlgo.ID(o.order.ID) }
func (o *orderResolver) MerchantImage() string { return o.order.MerchantImage }
func (o *orderResolver) MerchantName() string { return o.order.MerchantName }
func (o *orderResolver) MerchantLogo() string { return o.order.MerchantLogo }
func (o *orderResolver) Date() string { return o.order.Date }
func (o *orderResolver) NextDueAmount() float64 { return o.order.NextDueAmount }
func (o *orderResolver) NextDueDate() string { return o.order.NextDueDate }
func (o *orderResolver) Status() string { return string(o.order.Status) }
func (o *orderResolver) Reference() string { return o.order.Reference }
func (o *orderResolver) Price() float64 { return o.order.Price }
func (o *orderResolver) NumberOfArticles() int32 { return o.order.NumberOfArticles }
func (o *orderResolver) ShippedArticles() int32 { return o.order.ShippedArticles }

// errNotFoundCode уходит клиенту в extensions.code.
const errNotFoundCode = "NOT_FOUND"

// notFoundError: ошибка резолвера с extensions для GraphQL-ответа.
type notFoundError struct {
	id string
}

func newNotFoundError(id string) error {
	return &notFoundError{id: id}
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("Couldn't find order with id %s", e.id)
}

func (e *notFoundError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":    errNotFoundCode,
		"orderId": e.id,
	}
}

func (e *notFoundError) Is(target error) bool {
	return errors.Is(target, domain.ErrOrderNotFound)
}

const errMethodNotAllowedCode = "METHOD_NOT_ALLOWED"

// methodNotAllowedError отдаётся мутациям, пришедшим в GET-запросе.
type methodNotAllowedError struct{}

var errMutationOverGET = &methodNotAllowedError{}

func (e *methodNotAllowedError) Error() string {
	return "Can only perform a mutation operation from a POST request."
}

func (e *methodNotAllowedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": errMethodNotAllowedCode}
}

type readOnlyKey struct{}

// withReadOnly помечает запрос: мутации в нём не выполняются.
func withReadOnly(ctx context.Context) context.Context {
	return context.WithValue(ctx, readOnlyKey{}, true)
}

func mutationsForbidden(ctx context.Context) bool {
	readOnly, _ := ctx.Value(readOnlyKey{}).(bool)
	return readOnly
}
