package country

import "github.com/AbdulWasayUl/go-country-browser/models"

// datasetFields are the only fields the browser needs from restcountries.
const datasetFields = "name,flags,capital,borders"

// RestCountriesAPIResponse is the /all payload.
type RestCountriesAPIResponse []models.Country
