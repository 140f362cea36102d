package settings

import (
	"fmt"
	"strconv"

	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/gorm"
)

// Site is the typed view over the admin-editable key-value settings rows.
// It is loaded once at startup; every value is validated here rather than at
// point of use.
type Site struct {
	SiteName    string
	Currency    string
	PaymentMode string
	TierPrices  map[string]float64
}

const (
	keySiteName    = "site_name"
	keyCurrency    = "currency"
	keyPaymentMode = "payment_mode"

	tierPricePrefix = "price_"
)

var defaults = map[string]string{
	keySiteName:    "Invitarte",
	keyCurrency:    "PEN",
	keyPaymentMode: "test",
	"price_basico":  "0",
	"price_premium": "149",
}

func Load(db *gorm.DB) (*Site, error) {
	var rows []models.Setting
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	values := make(map[string]string, len(defaults)+len(rows))
	for k, v := range defaults {
		values[k] = v
	}
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	site := &Site{
		SiteName:    values[keySiteName],
		Currency:    values[keyCurrency],
		PaymentMode: values[keyPaymentMode],
		TierPrices:  make(map[string]float64),
	}

	if len(site.Currency) != 3 {
		return nil, fmt.Errorf("setting %q: %q is not an ISO currency code", keyCurrency, site.Currency)
	}
	if site.PaymentMode != "test" && site.PaymentMode != "live" {
		return nil, fmt.Errorf("setting %q: %q must be test or live", keyPaymentMode, site.PaymentMode)
	}

	for key, value := range values {
		if len(key) <= len(tierPricePrefix) || key[:len(tierPricePrefix)] != tierPricePrefix {
			continue
		}
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("setting %q: %q is not a valid price", key, value)
		}
		site.TierPrices[key[len(tierPricePrefix):]] = price
	}

	return site, nil
}

// PriceFor returns the configured price of a subscription tier.
func (s *Site) PriceFor(tier string) (float64, bool) {
	price, ok := s.TierPrices[tier]
	return price, ok
}
