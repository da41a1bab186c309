package nasne

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const (
	// DefaultPort is the port of the status API of a nasne.
	DefaultPort = 64210

	boxNamePath = "/status/boxNameGet"
	hddInfoPath = "/status/HDDInfoGet?id=0"
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	// keys of the status API are matched exactly, "errorCode" does not satisfy "errorcode"
	json = jsoniter.Config{CaseSensitive: true}.Froze()
)

// Fetcher reads the two status resources of a device.
type Fetcher interface {
	FetchIdentity(ctx context.Context, address string) (DeviceIdentity, error)
	FetchStorageStatus(ctx context.Context, address string) (StorageStatus, error)
}

// Client talks to the status API of nasne devices. It holds no per-device state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	port       int
}

// NewClient creates a client. A nil httpClient falls back to http.DefaultClient, a port of 0 to DefaultPort.
func NewClient(httpClient *http.Client, port int) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if port == 0 {
		port = DefaultPort
	}

	return &Client{
		httpClient: httpClient,
		port:       port,
	}
}

// FetchIdentity reads the box name of the device.
func (c *Client) FetchIdentity(ctx context.Context, address string) (DeviceIdentity, error) {
	var response boxNameResponse
	if err := c.fetch(ctx, address, boxNamePath, &response); err != nil {
		return DeviceIdentity{}, err
	}

	return response.toIdentity(), nil
}

// FetchStorageStatus reads the volume sizes and disk details of the internal HDD.
func (c *Client) FetchStorageStatus(ctx context.Context, address string) (StorageStatus, error) {
	var response hddInfoResponse
	if err := c.fetch(ctx, address, hddInfoPath, &response); err != nil {
		return StorageStatus{}, err
	}

	return response.toStorageStatus(), nil
}

func (c *Client) fetch(ctx context.Context, address, path string, target any) error {
	body, err := c.get(ctx, address, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &DecodeError{Address: address, Path: path, Err: err}
	}
	if err := validate.Struct(target); err != nil {
		return &DecodeError{Address: address, Path: path, Err: errors.Wrap(err, "missing field")}
	}

	return nil
}

func (c *Client) get(ctx context.Context, address, path string) ([]byte, error) {
	url := "http://" + net.JoinHostPort(address, strconv.Itoa(c.port)) + path
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Address: address, Path: path, Err: errors.Wrap(err, "create request")}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &TransportError{Address: address, Path: path, Err: err}
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &TransportError{Address: address, Path: path, StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{Address: address, Path: path, Err: errors.Wrap(err, "read body")}
	}

	return body, nil
}

// Collect fetches identity and storage status of one device and turns them into observations.
// Any failure discards the whole reading of the device.
func Collect(ctx context.Context, fetcher Fetcher, address string) ([]Observation, error) {
	identity, err := fetcher.FetchIdentity(ctx, address)
	if err != nil {
		return nil, err
	}
	status, err := fetcher.FetchStorageStatus(ctx, address)
	if err != nil {
		return nil, err
	}

	return Observe(identity, status), nil
}
