package seed

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"storefront/pkg/catalog/domain/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Categories []categoryRecord `yaml:"categories"`
	Products   []productRecord  `yaml:"products"`
}

type categoryRecord struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

type productRecord struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       string  `yaml:"price"`
	SalePrice   string  `yaml:"salePrice"`
	Category    string  `yaml:"category"`
	Image       string  `yaml:"image"`
	Rating      float64 `yaml:"rating"`
	ReviewCount int     `yaml:"reviewCount"`
	OnSale      bool    `yaml:"onSale"`
}

// Default returns the catalog bundled with the binary.
func Default() (*model.Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from path, falling back to the bundled catalog when path is empty.
func LoadFile(path string) (*model.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*model.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	categories := make([]model.Category, 0, len(file.Categories))
	for _, c := range file.Categories {
		categories = append(categories, model.Category{Name: c.Name, Image: c.Image})
	}

	products := make([]model.Product, 0, len(file.Products))
	for _, record := range file.Products {
		product, err := record.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	catalog, err := model.NewCatalog(products, categories)
	return catalog, errors.Wrap(err, "build catalog")
}

func (r productRecord) toProduct() (model.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return model.Product{}, errors.Wrapf(err, "product %d price", r.ID)
	}

	var salePrice decimal.NullDecimal
	if r.SalePrice != "" {
		salePrice.Decimal, err = decimal.NewFromString(r.SalePrice)
		if err != nil {
			return model.Product{}, errors.Wrapf(err, "product %d sale price", r.ID)
		}
		salePrice.Valid = true
	}

	return model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		SalePrice:   salePrice,
		Category:    r.Category,
		Image:       r.Image,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		OnSale:      r.OnSale,
	}, nil
}
