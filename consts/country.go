package consts

import (
	"fmt"
	"strings"
)

// CountryCenter holds the geographic center {lat, lon} of each canonical country
var CountryCenter map[string][2]float64

// CountryAlias maps the lower-cased spellings used by case datasets to canonical names
var CountryAlias map[string]string

func init() {
	CountryCenter = make(map[string][2]float64)

	CountryCenter["Afghanistan"] = [2]float64{33.93911, 67.709953}
	CountryCenter["Albania"] = [2]float64{41.153332, 20.168331}
	CountryCenter["Algeria"] = [2]float64{28.033886, 1.659626}
	CountryCenter["Argentina"] = [2]float64{-38.416097, -63.616672}
	CountryCenter["Australia"] = [2]float64{-25.274398, 133.775136}
	CountryCenter["Austria"] = [2]float64{47.516231, 14.550072}
	CountryCenter["Bangladesh"] = [2]float64{23.684994, 90.356331}
	CountryCenter["Belgium"] = [2]float64{50.503887, 4.469936}
	CountryCenter["Brazil"] = [2]float64{-14.235004, -51.92528}
	CountryCenter["Canada"] = [2]float64{56.130366, -106.346771}
	CountryCenter["Chile"] = [2]float64{-35.675147, -71.542969}
	CountryCenter["China"] = [2]float64{35.86166, 104.195397}
	CountryCenter["Colombia"] = [2]float64{4.570868, -74.297333}
	CountryCenter["Czechia"] = [2]float64{49.817492, 15.472962}
	CountryCenter["Denmark"] = [2]float64{56.26392, 9.501785}
	CountryCenter["Egypt"] = [2]float64{26.820553, 30.802498}
	CountryCenter["Finland"] = [2]float64{61.92411, 25.748151}
	CountryCenter["France"] = [2]float64{46.227638, 2.213749}
	CountryCenter["Germany"] = [2]float64{51.165691, 10.451526}
	CountryCenter["Greece"] = [2]float64{39.074208, 21.824312}
	CountryCenter["Hong Kong"] = [2]float64{22.396428, 114.109497}
	CountryCenter["Hungary"] = [2]float64{47.162494, 19.503304}
	CountryCenter["Iceland"] = [2]float64{64.963051, -19.020835}
	CountryCenter["India"] = [2]float64{20.593684, 78.96288}
	CountryCenter["Indonesia"] = [2]float64{-0.789275, 113.921327}
	CountryCenter["Iran"] = [2]float64{32.427908, 53.688046}
	CountryCenter["Iraq"] = [2]float64{33.223191, 43.679291}
	CountryCenter["Ireland"] = [2]float64{53.41291, -8.24389}
	CountryCenter["Israel"] = [2]float64{31.046051, 34.851612}
	CountryCenter["Italy"] = [2]float64{41.87194, 12.56738}
	CountryCenter["Japan"] = [2]float64{36.204824, 138.252924}
	CountryCenter["Kenya"] = [2]float64{-0.023559, 37.906193}
	CountryCenter["Malaysia"] = [2]float64{4.210484, 101.975766}
	CountryCenter["Mexico"] = [2]float64{23.634501, -102.552784}
	CountryCenter["Netherlands"] = [2]float64{52.132633, 5.291266}
	CountryCenter["New Zealand"] = [2]float64{-40.900557, 174.885971}
	CountryCenter["Nigeria"] = [2]float64{9.081999, 8.675277}
	CountryCenter["Norway"] = [2]float64{60.472024, 8.468946}
	CountryCenter["Pakistan"] = [2]float64{30.375321, 69.345116}
	CountryCenter["Peru"] = [2]float64{-9.189967, -75.015152}
	CountryCenter["Philippines"] = [2]float64{12.879721, 121.774017}
	CountryCenter["Poland"] = [2]float64{51.919438, 19.145136}
	CountryCenter["Portugal"] = [2]float64{39.399872, -8.224454}
	CountryCenter["Romania"] = [2]float64{45.943161, 24.96676}
	CountryCenter["Russia"] = [2]float64{61.52401, 105.318756}
	CountryCenter["Saudi Arabia"] = [2]float64{23.885942, 45.079162}
	CountryCenter["Singapore"] = [2]float64{1.352083, 103.819836}
	CountryCenter["South Africa"] = [2]float64{-30.559482, 22.937506}
	CountryCenter["South Korea"] = [2]float64{35.907757, 127.766922}
	CountryCenter["Spain"] = [2]float64{40.463667, -3.74922}
	CountryCenter["Sweden"] = [2]float64{60.128161, 18.643501}
	CountryCenter["Switzerland"] = [2]float64{46.818188, 8.227512}
	CountryCenter["Taiwan"] = [2]float64{23.69781, 120.960515}
	CountryCenter["Thailand"] = [2]float64{15.870032, 100.992541}
	CountryCenter["Turkey"] = [2]float64{38.963745, 35.243322}
	CountryCenter["Ukraine"] = [2]float64{48.379433, 31.16558}
	CountryCenter["United Arab Emirates"] = [2]float64{23.424076, 53.847818}
	CountryCenter["United Kingdom"] = [2]float64{55.378051, -3.435973}
	CountryCenter["United States"] = [2]float64{37.09024, -95.712891}
	CountryCenter["Vietnam"] = [2]float64{14.058324, 108.277199}

	CountryAlias = make(map[string]string)

	CountryAlias["us"] = "United States"
	CountryAlias["usa"] = "United States"
	CountryAlias["united states of america"] = "United States"
	CountryAlias["mainland china"] = "China"
	CountryAlias["uk"] = "United Kingdom"
	CountryAlias["great britain"] = "United Kingdom"
	CountryAlias["korea, south"] = "South Korea"
	CountryAlias["republic of korea"] = "South Korea"
	CountryAlias["czech republic"] = "Czechia"
	CountryAlias["iran (islamic republic of)"] = "Iran"
	CountryAlias["viet nam"] = "Vietnam"
	CountryAlias["russian federation"] = "Russia"
	CountryAlias["hong kong sar"] = "Hong Kong"
	CountryAlias["taiwan*"] = "Taiwan"
	CountryAlias["republic of ireland"] = "Ireland"
	CountryAlias["uae"] = "United Arab Emirates"
}

// CanonicalCountry returns the canonical name of a country spelling
func CanonicalCountry(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := CountryAlias[key]; ok {
		return canonical, nil
	}

	for canonical := range CountryCenter {
		if strings.ToLower(canonical) == key {
			return canonical, nil
		}
	}

	return "", fmt.Errorf("%s not exist", name)
}
