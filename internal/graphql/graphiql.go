package graphql

import "strings"

const graphiQLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>orders-mock GraphiQL</title>
  <link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
  <style>body { margin: 0; height: 100vh; } #graphiql { height: 100vh; }</style>
</head>
<body>
  <div id="graphiql">Loading...</div>
  <script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
  <script>
    const fetcher = GraphiQL.createFetcher({ url: '{{ENDPOINT}}' });
    ReactDOM.createRoot(document.getElementById('graphiql')).render(
      React.createElement(GraphiQL, {
        fetcher: fetcher,
        defaultQuery: '{\n  orders {\n    id\n    merchantName\n    status\n  }\n}\n',
      })
    );
  </script>
</body>
</html>
`

// graphiQLPage подставляет путь эндпоинта в страницу GraphiQL.
func graphiQLPage(endpoint string) []byte {
	return []byte(strings.ReplaceAll(graphiQLTemplate, "{{ENDPOINT}}", endpoint))
}
