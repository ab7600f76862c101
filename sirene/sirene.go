// Package sirene looks up French companies in the INSEE SIRENE registry.
// It is used once, during professional onboarding, to verify the SIRET the
// professional declared.
package sirene

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"time"
)

const defaultBaseURL = "https://api.insee.fr/api-sirene/3.11/siret"

var siretPattern = regexp.MustCompile(`^\d{14}$`)

// IsValidSiret reports whether s is a well-formed 14-digit SIRET.
func IsValidSiret(s string) bool {
	return siretPattern.MatchString(s)
}

// CompanyAddress is the registered address of an establishment.
type CompanyAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Company is the subset of registry data the marketplace cares about.
type Company struct {
	CompanyName  string         `json:"company_name"`
	Siret        string         `json:"siret"`
	Siren        string         `json:"siren"`
	ApeCode      string         `json:"ape_code"`
	LegalStatus  string         `json:"legal_status"`
	CreationDate string         `json:"creation_date"`
	IsActive     bool           `json:"is_active"`
	Address      CompanyAddress `json:"address"`
}

// Client calls the SIRENE API with the integration key header.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		APIKey:     os.Getenv("SIRENE_API_KEY"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// sireneResponse mirrors the nested INSEE payload.
type sireneResponse struct {
	Etablissement struct {
		Siret                     string `json:"siret"`
		Siren                     string `json:"siren"`
		DateCreationEtablissement string `json:"dateCreationEtablissement"`
		UniteLegale               struct {
			DenominationUniteLegale       string `json:"denominationUniteLegale"`
			ActivitePrincipaleUniteLegale string `json:"activitePrincipaleUniteLegale"`
			CategorieJuridiqueUniteLegale string `json:"categorieJuridiqueUniteLegale"`
		} `json:"uniteLegale"`
		AdresseEtablissement struct {
			NumeroVoieEtablissement     string `json:"numeroVoieEtablissement"`
			TypeVoieEtablissement       string `json:"typeVoieEtablissement"`
			LibelleVoieEtablissement    string `json:"libelleVoieEtablissement"`
			LibelleCommuneEtablissement string `json:"libelleCommuneEtablissement"`
			CodePostalEtablissement     string `json:"codePostalEtablissement"`
		} `json:"adresseEtablissement"`
		PeriodesEtablissement []struct {
			EtatAdministratifEtablissement string `json:"etatAdministratifEtablissement"`
		} `json:"periodesEtablissement"`
	} `json:"etablissement"`
}

// Lookup fetches and maps the registry record for a SIRET. The caller is
// expected to have validated the format already.
func (c *Client) Lookup(ctx context.Context, siret string) (*Company, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.BaseURL, siret), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-INSEE-Api-Key-Integration", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sirene request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sirene returned status %d", resp.StatusCode)
	}

	var payload sireneResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid sirene payload: %w", err)
	}

	e := payload.Etablissement
	if e.Siret == "" {
		return nil, fmt.Errorf("invalid sirene data structure")
	}

	company := &Company{
		CompanyName:  e.UniteLegale.DenominationUniteLegale,
		Siret:        e.Siret,
		Siren:        e.Siren,
		ApeCode:      e.UniteLegale.ActivitePrincipaleUniteLegale,
		LegalStatus:  e.UniteLegale.CategorieJuridiqueUniteLegale,
		CreationDate: e.DateCreationEtablissement,
		Address: CompanyAddress{
			Street: fmt.Sprintf("%s %s %s",
				e.AdresseEtablissement.NumeroVoieEtablissement,
				e.AdresseEtablissement.TypeVoieEtablissement,
				e.AdresseEtablissement.LibelleVoieEtablissement),
			City:       e.AdresseEtablissement.LibelleCommuneEtablissement,
			PostalCode: e.AdresseEtablissement.CodePostalEtablissement,
			Country:    "France",
		},
	}
	if len(e.PeriodesEtablissement) > 0 {
		company.IsActive = e.PeriodesEtablissement[0].EtatAdministratifEtablissement == "A"
	}
	return company, nil
}

// ErrNotFound means no establishment exists for the SIRET.
var ErrNotFound = fmt.Errorf("no establishment found for this SIRET")
