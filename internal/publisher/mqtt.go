package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jgoulah/loadshape/internal/config"
	"github.com/jgoulah/loadshape/pkg/models"
)

// Publisher pushes analysis results to Home Assistant and/or an MQTT broker
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	haConfig    config.HAConfig
}

// New creates a new publisher (supports both MQTT and HA HTTP API)
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig) (*Publisher, error) {
	// Validate HA config if enabled
	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityID == "" {
			return nil, fmt.Errorf("Home Assistant entity_id is required when enabled")
		}
	}

	var client mqtt.Client
	var topicPrefix string

	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		topicPrefix = mqttCfg.TopicPrefix
		if topicPrefix == "" {
			topicPrefix = "loadshape"
		}

		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID("loadshape")
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(true)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
	}

	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		haConfig:    haCfg,
	}, nil
}

// HAPayload matches the Home Assistant backfill service call data
type HAPayload struct {
	EntityID    string `json:"entity_id"`
	State       string `json:"state"`
	LastChanged string `json:"last_changed"`
	LastUpdated string `json:"last_updated"`
}

// PublishDaily sends one day's mean demand either to the MQTT broker or to
// Home Assistant via its HTTP API, whichever is configured.
func (p *Publisher) PublishDaily(record models.DailyRecord) error {
	if p.client != nil {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}
		topic := fmt.Sprintf("%s/daily/%s", p.topicPrefix, record.Date.Format("2006-01-02"))
		if token := p.client.Publish(topic, 0, true, payload); token.Wait() && token.Error() != nil {
			return fmt.Errorf("publishing to MQTT: %w", token.Error())
		}
		return nil
	}

	if !p.haConfig.Enabled {
		return fmt.Errorf("no publishing target is enabled in config")
	}

	timestamp := record.Date.Format(time.RFC3339)
	payload := HAPayload{
		EntityID:    p.haConfig.EntityID,
		State:       fmt.Sprintf("%.2f", record.MeanMW),
		LastChanged: timestamp,
		LastUpdated: timestamp,
	}
	return p.postHA("backfill_state", payload)
}

// PublishModel sends a regime's fit parameters to the MQTT broker as a
// retained message, so a dashboard always sees the latest fit.
func (p *Publisher) PublishModel(fit *models.FittedModel) error {
	if p.client == nil {
		return fmt.Errorf("MQTT publishing is not enabled in config")
	}

	payload, err := json.Marshal(fit)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	topic := fmt.Sprintf("%s/model/%s", p.topicPrefix, fit.Regime)
	if token := p.client.Publish(topic, 0, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing to MQTT: %w", token.Error())
	}
	return nil
}

func (p *Publisher) postHA(endpoint string, payload interface{}) error {
	apiURL := fmt.Sprintf("%s/api/appdaemon/%s", p.haConfig.URL, endpoint)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
