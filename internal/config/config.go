package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode     string `yaml:"mode"`     // DRY_RUN or LIVE
	Exchange string `yaml:"exchange"` // BITHUMB or BINANCE

	Pair          string `yaml:"pair"`
	BaseCurrency  string `yaml:"base_currency"`
	QuoteCurrency string `yaml:"quote_currency"`

	PollSeconds         int `yaml:"poll_seconds"`
	ErrorBackoffSeconds int `yaml:"error_backoff_seconds"`

	Candles struct {
		Daily  int `yaml:"daily"`
		Hourly int `yaml:"hourly"`
	} `yaml:"candles"`

	Indicators struct {
		SMAWindows []int   `yaml:"sma_windows"`
		EMAWindows []int   `yaml:"ema_windows"`
		RSIPeriod  int     `yaml:"rsi_period"`
		BBWindow   int     `yaml:"bb_window"`
		BBStdDev   float64 `yaml:"bb_stddev"`
		MACDFast   int     `yaml:"macd_fast"`
		MACDSlow   int     `yaml:"macd_slow"`
		MACDSignal int     `yaml:"macd_signal"`
	} `yaml:"indicators"`

	Order struct {
		// FeeMargin is the fraction of a buy held back to absorb trading
		// fees so the exchange does not reject the order for insufficient
		// funds after fee deduction.
		FeeMargin float64 `yaml:"fee_margin"`
		// MinNotional is the smallest order value, in quote currency, that
		// will be submitted. Candidates at or below it are skipped.
		MinNotional float64 `yaml:"min_notional"`
	} `yaml:"order"`

	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI, GEMINI or NOOP
		Model       string  `yaml:"model"`
		Endpoint    string  `yaml:"endpoint"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`

	Context struct {
		FearGreed struct {
			Enabled bool   `yaml:"enabled"`
			URL     string `yaml:"url"`
		} `yaml:"fear_greed"`
		News struct {
			Enabled      bool `yaml:"enabled"`
			MaxHeadlines int  `yaml:"max_headlines"`
		} `yaml:"news"`
		Chart struct {
			Enabled bool   `yaml:"enabled"`
			URL     string `yaml:"url"`
		} `yaml:"chart"`
		Transcript struct {
			Enabled  bool   `yaml:"enabled"`
			URL      string `yaml:"url"`
			MaxChars int    `yaml:"max_chars"`
		} `yaml:"transcript"`
	} `yaml:"context"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if c.Exchange != "BITHUMB" && c.Exchange != "BINANCE" {
		return fmt.Errorf("invalid exchange '%s': must be 'BITHUMB' or 'BINANCE'", c.Exchange)
	}
	if c.Pair == "" {
		return errors.New("pair cannot be empty")
	}
	if c.BaseCurrency == "" || c.QuoteCurrency == "" {
		return errors.New("base_currency and quote_currency cannot be empty")
	}
	if c.Order.FeeMargin < 0 || c.Order.FeeMargin >= 0.05 {
		return fmt.Errorf("order.fee_margin must be in [0, 0.05), got %v", c.Order.FeeMargin)
	}
	if c.Order.MinNotional < 0 {
		return fmt.Errorf("order.min_notional cannot be negative, got %v", c.Order.MinNotional)
	}
	if c.Candles.Daily < c.Indicators.BBWindow {
		return fmt.Errorf("candles.daily (%d) must cover the Bollinger window (%d)",
			c.Candles.Daily, c.Indicators.BBWindow)
	}
	if c.Candles.Hourly < c.Indicators.RSIPeriod+1 {
		return fmt.Errorf("candles.hourly (%d) must cover the RSI period (%d)",
			c.Candles.Hourly, c.Indicators.RSIPeriod)
	}
	return nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = "DRY_RUN"
	}
	if c.Exchange == "" {
		c.Exchange = "BITHUMB"
	}
	if c.Pair == "" {
		c.Pair = "KRW-BTC"
	}
	if c.BaseCurrency == "" {
		c.BaseCurrency = "BTC"
	}
	if c.QuoteCurrency == "" {
		c.QuoteCurrency = "KRW"
	}
	if c.PollSeconds == 0 {
		c.PollSeconds = 600
	}
	if c.ErrorBackoffSeconds == 0 {
		c.ErrorBackoffSeconds = 60
	}
	if c.Candles.Daily == 0 {
		c.Candles.Daily = 30
	}
	if c.Candles.Hourly == 0 {
		c.Candles.Hourly = 24
	}
	if len(c.Indicators.SMAWindows) == 0 {
		c.Indicators.SMAWindows = []int{20}
	}
	if len(c.Indicators.EMAWindows) == 0 {
		c.Indicators.EMAWindows = []int{12}
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.BBWindow == 0 {
		c.Indicators.BBWindow = 20
	}
	if c.Indicators.BBStdDev == 0 {
		c.Indicators.BBStdDev = 2.0
	}
	if c.Indicators.MACDFast == 0 {
		c.Indicators.MACDFast = 12
	}
	if c.Indicators.MACDSlow == 0 {
		c.Indicators.MACDSlow = 26
	}
	if c.Indicators.MACDSignal == 0 {
		c.Indicators.MACDSignal = 9
	}
	if c.Order.FeeMargin == 0 {
		c.Order.FeeMargin = 0.0005
	}
	if c.Order.MinNotional == 0 {
		c.Order.MinNotional = 5000
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.Context.News.MaxHeadlines == 0 {
		c.Context.News.MaxHeadlines = 10
	}
	if c.Context.Transcript.MaxChars == 0 {
		c.Context.Transcript.MaxChars = 4000
	}
}
