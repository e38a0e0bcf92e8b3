// Package graphql описывает GraphQL API заказов и его HTTP-обвязку.
package graphql

import (
	"context"
	"fmt"

	graphqlgo "github.com/graph-gophers/graphql-go"
	log "github.com/sirupsen/logrus"
)

// SchemaSDL: контракт API. Менять его нельзя: на нём держатся клиентские прототипы.
const SchemaSDL = `
  type Order {
    id: ID!
    merchantImage: String!
    merchantName: String!
    merchantLogo: String!
    date: String!
    nextDueAmount: Float!
    nextDueDate: String!
    status: String!
    reference: String!
    price: Float!
    numberOfArticles: Int!
    shippedArticles: Int!
  }

  type Query {
    orders: [Order]
    orderById(orderId: ID!): Order
  }

  type Mutation {
    payOrder(orderId: ID!): Order
    resetOrders: [Order]
  }

  schema {
    query: Query
    mutation: Mutation
  }
`

// NewSchema разбирает SDL и связывает его с резолверами.
func NewSchema(resolver *Resolver, logger *log.Entry) (*graphqlgo.Schema, error) {
	if logger == nil {
		logger = log.WithField("component", "graphql")
	}
	schema, err := graphqlgo.ParseSchema(SchemaSDL, resolver, graphqlgo.Logger(&panicLogger{logger: logger}))
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}
	return schema, nil
}

// panicLogger пишет паники резолверов в logrus вместо стандартного логгера graphql-go.
type panicLogger struct {
	logger *log.Entry
}

func (l *panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.logger.WithField("panic", value).Error("graphql resolver panicked")
}
