package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const DefaultAPIURL = "https://api.maclookup.app/v2/macs/"

// MacLookupResolver queries a maclookup.app style endpoint: GET <base><mac>
// answering with a JSON body carrying a "company" field.
type MacLookupResolver struct {
	baseURL string
	client  *http.Client
}

func NewMacLookupResolver(baseURL string, timeout time.Duration) *MacLookupResolver {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &MacLookupResolver{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (r *MacLookupResolver) Resolve(ctx context.Context, mac string) VendorResult {

	target := r.baseURL + url.PathEscape(mac)
	logrus.Debugf("Resolving vendor for %s via %s...", mac, target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return LookupError(ErrorKindNetwork, err.Error())
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return LookupError(ErrorKindNetwork, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.Debugf("Vendor lookup for %s returned status %d", mac, resp.StatusCode)
		return LookupError(ErrorKindHTTP, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return LookupError(ErrorKindNetwork, err.Error())
	}

	if !gjson.ValidBytes(body) {
		return LookupError(ErrorKindHTTP, "malformed response body")
	}

	company := gjson.GetBytes(body, "company").String()
	if company == "" {
		return VendorNotFound()
	}

	return FoundVendor(company)
}
