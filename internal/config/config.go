package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"go-pos-cart/internal/receipt"
	"go-pos-cart/pkg/validator"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	TaxRate        decimal.Decimal `validate:"gte=0,lt=1"`
	CurrencySymbol string          `validate:"required"`
	StoreName      string          `validate:"required"`
	StoreAddress   string
	StorePhone     string
	TaxLabel       string
	ReceiptFooter  string
	ReceiptWidth   int    `validate:"gte=24,lte=120"`
	TxnPrefix      string `validate:"omitempty,max=8,alphanum"`
	LogLevel       string `validate:"oneof=debug info warn error"`
	Database       Database
}

// Database is optional; an empty DSN and host means the in-memory catalog.
type Database struct {
	URL      string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	TimeZone string
}

func (d Database) Enabled() bool {
	return d.URL != "" || d.Host != ""
}

// DSN returns URL when set, otherwise a key/value DSN built from the parts.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	tz := d.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, tz,
	)
}

// Header returns the receipt header described by the store settings.
func (c *Config) Header() receipt.Header {
	return receipt.Header{
		StoreName: c.StoreName,
		Address:   c.StoreAddress,
		Phone:     c.StorePhone,
		TaxLabel:  c.TaxLabel,
		Footer:    c.ReceiptFooter,
	}
}

// Load reads the given .env files (".env" when none are given) and then the
// process environment. A missing .env file is not an error; the returned
// flag reports whether one was loaded.
func Load(files ...string) (*Config, bool, error) {
	loaded := true
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("load env file: %w", err)
		}
		loaded = false
	}

	cfg, err := FromEnv()
	return cfg, loaded, err
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	taxRate, err := decimal.NewFromString(getEnv("TAX_RATE", "0.08"))
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE: %w", err)
	}
	width, err := strconv.Atoi(getEnv("RECEIPT_WIDTH", strconv.Itoa(receipt.DefaultWidth)))
	if err != nil {
		return nil, fmt.Errorf("RECEIPT_WIDTH: %w", err)
	}

	cfg := &Config{
		TaxRate:        taxRate,
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
		StoreName:      getEnv("STORE_NAME", "Main Street Pharmacy"),
		StoreAddress:   os.Getenv("STORE_ADDRESS"),
		StorePhone:     os.Getenv("STORE_PHONE"),
		TaxLabel:       os.Getenv("TAX_LABEL"),
		ReceiptFooter:  os.Getenv("RECEIPT_FOOTER"),
		ReceiptWidth:   width,
		TxnPrefix:      getEnv("TXN_PREFIX", "TXN"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Database: Database{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			TimeZone: os.Getenv("DB_TIMEZONE"),
		},
	}

	if errs := validator.ValidateStruct(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", validator.Summary(errs))
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
