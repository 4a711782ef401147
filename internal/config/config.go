// Package config holds the static configuration for the booking assistant:
// hotel identity, the room catalog with inventory, pricing for extras, and
// the canned conversational responses. The loaded Config is treated as
// immutable and handed to components at construction time.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Hotel     HotelConfig     `yaml:"hotel"`
	Rooms     []RoomConfig    `yaml:"rooms"`
	Booking   BookingConfig   `yaml:"booking"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Store     StoreConfig     `yaml:"store"`
	Responses ResponsesConfig `yaml:"responses"`
}

// HotelConfig identifies the property the assistant books for.
type HotelConfig struct {
	Name      string `yaml:"name"`
	Address   string `yaml:"address"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
	Assistant string `yaml:"assistant_name"`
}

// RoomConfig describes one bookable room category.
type RoomConfig struct {
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Description string  `yaml:"description"`
	MaxGuests   int     `yaml:"max_guests"`
	Inventory   int     `yaml:"inventory"`
}

// BookingConfig holds business-rule boundaries for new bookings.
type BookingConfig struct {
	WindowYears int `yaml:"window_years"`
}

// PricingConfig holds the rates for optional extras and the tax rate.
type PricingConfig struct {
	BreakfastPerGuestNight float64 `yaml:"breakfast_per_guest_night"`
	ShuttleFee             float64 `yaml:"shuttle_fee"`
	TaxRate                float64 `yaml:"tax_rate"`
}

// StoreConfig points at the booking record store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ResponsesConfig holds the canned replies for non-booking intents.
type ResponsesConfig struct {
	Greeting string `yaml:"greeting"`
	Booking  string `yaml:"booking"`
	Goodbye  string `yaml:"goodbye"`
	About    string `yaml:"about"`
	Unknown  string `yaml:"unknown"`
}

// Load reads the configuration from the given path and fills gaps with defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the built-in configuration, used when no config file is given.
func Default() *Config {
	var cfg Config

	applyDefaults(&cfg)

	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Hotel.Name == "" {
		cfg.Hotel.Name = "Hotel Sara"
	}

	if cfg.Hotel.Address == "" {
		cfg.Hotel.Address = "123 Alexanderplatz, Berlin, Germany"
	}

	if cfg.Hotel.Phone == "" {
		cfg.Hotel.Phone = "+49 123 456 789"
	}

	if cfg.Hotel.Email == "" {
		cfg.Hotel.Email = "contact@hotelsara.com"
	}

	if cfg.Hotel.Assistant == "" {
		cfg.Hotel.Assistant = "SaraBot"
	}

	if len(cfg.Rooms) == 0 {
		cfg.Rooms = []RoomConfig{
			{Name: "Single Room", Price: 79, Description: "1 bed, ideal for solo travelers", MaxGuests: 1, Inventory: 10},
			{Name: "King Room", Price: 109, Description: "1 large king-size bed, ideal for 2 adults", MaxGuests: 2, Inventory: 7},
			{Name: "Two Bed Room", Price: 109, Description: "2 separate beds, great for 2 guests or adult with kid", MaxGuests: 2, Inventory: 8},
			{Name: "Family Suite", Price: 159, Description: "Spacious, multiple beds, perfect for families", MaxGuests: 6, Inventory: 5},
		}
	}

	if cfg.Booking.WindowYears <= 0 {
		cfg.Booking.WindowYears = 2
	}

	if cfg.Pricing.BreakfastPerGuestNight <= 0 {
		cfg.Pricing.BreakfastPerGuestNight = 15
	}

	if cfg.Pricing.ShuttleFee <= 0 {
		cfg.Pricing.ShuttleFee = 60
	}

	if cfg.Pricing.TaxRate <= 0 {
		cfg.Pricing.TaxRate = 0.10
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/bookings.csv"
	}

	if cfg.Responses.Greeting == "" {
		cfg.Responses.Greeting = fmt.Sprintf("Hello! Welcome to %s. What can I do for you today?", cfg.Hotel.Name)
	}

	if cfg.Responses.Booking == "" {
		cfg.Responses.Booking = "Great! Let's start! First of all we need your full name for the reservation."
	}

	if cfg.Responses.Goodbye == "" {
		cfg.Responses.Goodbye = "Thank you for visiting! Hope to see you again."
	}

	if cfg.Responses.About == "" {
		cfg.Responses.About = fmt.Sprintf("I'm %s, your friendly hotel assistant here to help with reservations and more!", cfg.Hotel.Assistant)
	}

	if cfg.Responses.Unknown == "" {
		cfg.Responses.Unknown = "I'm not sure I understood that. Could you reword or ask about reservations, prices, or something related?"
	}
}
