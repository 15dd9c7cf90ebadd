package exchange

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"voicedesk/internal/domain"
)

//go:embed config/endpoints.yaml
var endpointFiles embed.FS

// Endpoint describes where one exchange publishes its public market data and
// how the symbol is passed on the ticker query.
type Endpoint struct {
	Name         string            `yaml:"name"`
	SymbolsURL   string            `yaml:"symbols_url"`
	PriceURL     string            `yaml:"price_url"`
	SymbolParam  string            `yaml:"symbol_param"`
	StaticParams map[string]string `yaml:"static_params"`
}

type endpointConfig struct {
	Exchanges []Endpoint `yaml:"exchanges"`
}

// Directory is the loaded endpoint table, resolvable case-insensitively so
// extracted exchange names ("BINANCE") find their entry ("Binance").
type Directory struct {
	names  []string
	byName map[string]Endpoint
}

// LoadDirectory parses the embedded endpoint YAML.
func LoadDirectory() (*Directory, error) {
	data, err := endpointFiles.ReadFile("config/endpoints.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoint config: %w", err)
	}

	var cfg endpointConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal endpoint config: %w", err)
	}
	if len(cfg.Exchanges) == 0 {
		return nil, fmt.Errorf("endpoint config lists no exchanges")
	}

	d := &Directory{byName: make(map[string]Endpoint, len(cfg.Exchanges))}
	for _, ep := range cfg.Exchanges {
		d.names = append(d.names, ep.Name)
		d.byName[strings.ToLower(ep.Name)] = ep
	}
	return d, nil
}

// Names returns the exchange names in declared order.
func (d *Directory) Names() []string {
	return append([]string(nil), d.names...)
}

// Resolve finds the endpoint entry for an exchange name, ignoring case.
func (d *Directory) Resolve(name string) (Endpoint, error) {
	ep, ok := d.byName[strings.ToLower(name)]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: unsupported exchange %q", domain.ErrValidation, name)
	}
	return ep, nil
}
