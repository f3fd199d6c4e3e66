package costofliving

import "strings"

// twoDigitPrefixRegions maps the leading two digits of a postal code to the
// region that owns most of that prefix range. Prefixes shared by several
// states resolve to the dominant one.
var twoDigitPrefixRegions = map[string]string{
	"00": "PR", "01": "MA", "02": "MA", "03": "NH", "04": "ME",
	"05": "VT", "06": "CT", "07": "NJ", "08": "NJ", "09": "AE",
	"10": "NY", "11": "NY", "12": "NY", "13": "NY", "14": "NY",
	"15": "PA", "16": "PA", "17": "PA", "18": "PA", "19": "PA",
	"20": "DC", "21": "MD", "22": "VA", "23": "VA", "24": "VA",
	"25": "WV", "26": "WV", "27": "NC", "28": "NC", "29": "SC",
	"30": "GA", "31": "GA", "32": "FL", "33": "FL", "34": "FL",
	"35": "AL", "36": "AL", "37": "TN", "38": "TN", "39": "MS",
	"40": "KY", "41": "KY", "42": "KY", "43": "OH", "44": "OH",
	"45": "OH", "46": "IN", "47": "IN", "48": "MI", "49": "MI",
	"50": "IA", "51": "IA", "52": "IA", "53": "WI", "54": "WI",
	"55": "MN", "56": "MN", "57": "SD", "58": "ND", "59": "MT",
	"60": "IL", "61": "IL", "62": "IL", "63": "MO", "64": "MO",
	"65": "MO", "66": "KS", "67": "KS", "68": "NE", "69": "NE",
	"70": "LA", "71": "LA", "72": "AR", "73": "OK", "74": "OK",
	"75": "TX", "76": "TX", "77": "TX", "78": "TX", "79": "TX",
	"80": "CO", "81": "CO", "82": "WY", "83": "ID", "84": "UT",
	"85": "AZ", "86": "AZ", "87": "NM", "88": "NM", "89": "NV",
	"90": "CA", "91": "CA", "92": "CA", "93": "CA", "94": "CA",
	"95": "CA", "96": "CA", "97": "OR", "98": "WA", "99": "AK",
}

// oneDigitPrefixRegions is consulted only when the two-digit prefix is unknown.
var oneDigitPrefixRegions = map[string]string{
	"0": "MA", "1": "NY", "2": "VA", "3": "FL", "4": "OH",
	"5": "MN", "6": "IL", "7": "TX", "8": "CO", "9": "CA",
}

// regionEstimates holds hand-tuned placeholder price parities per region.
// The values have no cited derivation and are not verified ground truth.
var regionEstimates = map[string]Record{
	"AL": {AllItems: 86.5, Housing: 79.0, Goods: 91.0, OtherServices: 89.5},
	"AK": {AllItems: 125.0, Housing: 140.0, Goods: 118.0, OtherServices: 120.0},
	"AZ": {AllItems: 97.0, Housing: 98.0, Goods: 96.5, OtherServices: 98.0},
	"AR": {AllItems: 85.0, Housing: 77.0, Goods: 90.0, OtherServices: 88.0},
	"CA": {AllItems: 142.0, Housing: 189.0, Goods: 114.5, OtherServices: 127.5},
	"CO": {AllItems: 105.0, Housing: 115.0, Goods: 99.0, OtherServices: 103.0},
	"CT": {AllItems: 115.0, Housing: 135.0, Goods: 105.0, OtherServices: 112.0},
	"DE": {AllItems: 102.0, Housing: 108.0, Goods: 98.0, OtherServices: 101.5},
	"FL": {AllItems: 96.0, Housing: 96.0, Goods: 96.5, OtherServices: 97.0},
	"GA": {AllItems: 95.5, Housing: 95.0, Goods: 96.0, OtherServices: 97.0},
	"HI": {AllItems: 150.0, Housing: 195.0, Goods: 125.0, OtherServices: 135.0},
	"ID": {AllItems: 94.0, Housing: 92.0, Goods: 95.0, OtherServices: 96.0},
	"IL": {AllItems: 108.0, Housing: 120.0, Goods: 101.0, OtherServices: 106.0},
	"IN": {AllItems: 88.5, Housing: 83.0, Goods: 92.5, OtherServices: 91.5},
	"IA": {AllItems: 90.0, Housing: 85.5, Goods: 93.0, OtherServices: 92.5},
	"KS": {AllItems: 89.0, Housing: 84.0, Goods: 92.5, OtherServices: 92.0},
	"KY": {AllItems: 88.0, Housing: 82.0, Goods: 92.0, OtherServices: 91.0},
	"LA": {AllItems: 93.5, Housing: 91.0, Goods: 95.5, OtherServices: 96.0},
	"ME": {AllItems: 105.5, Housing: 113.0, Goods: 100.0, OtherServices: 104.5},
	"MD": {AllItems: 112.0, Housing: 130.0, Goods: 103.0, OtherServices: 109.0},
	"MA": {AllItems: 117.5, Housing: 141.0, Goods: 105.5, OtherServices: 114.5},
	"MI": {AllItems: 89.5, Housing: 85.0, Goods: 93.0, OtherServices: 92.0},
	"MN": {AllItems: 102.0, Housing: 109.5, Goods: 96.5, OtherServices: 101.0},
	"MS": {AllItems: 84.0, Housing: 75.0, Goods: 89.0, OtherServices: 87.0},
	"MO": {AllItems: 90.5, Housing: 86.0, Goods: 93.5, OtherServices: 93.0},
	"MT": {AllItems: 95.0, Housing: 93.0, Goods: 96.0, OtherServices: 97.0},
	"NE": {AllItems: 91.0, Housing: 87.0, Goods: 93.5, OtherServices: 93.5},
	"NV": {AllItems: 98.0, Housing: 100.0, Goods: 97.0, OtherServices: 98.5},
	"NH": {AllItems: 103.0, Housing: 110.0, Goods: 99.0, OtherServices: 102.0},
	"NJ": {AllItems: 120.0, Housing: 150.0, Goods: 107.0, OtherServices: 116.0},
	"NM": {AllItems: 92.5, Housing: 89.0, Goods: 94.5, OtherServices: 95.0},
	"NY": {AllItems: 125.0, Housing: 165.0, Goods: 109.0, OtherServices: 118.0},
	"NC": {AllItems: 94.5, Housing: 93.0, Goods: 95.5, OtherServices: 96.0},
	"ND": {AllItems: 96.0, Housing: 94.0, Goods: 97.0, OtherServices: 98.0},
	"OH": {AllItems: 91.5, Housing: 88.0, Goods: 94.0, OtherServices: 94.0},
	"OK": {AllItems: 87.0, Housing: 80.0, Goods: 91.5, OtherServices: 90.0},
	"OR": {AllItems: 110.0, Housing: 125.0, Goods: 102.5, OtherServices: 107.5},
	"PA": {AllItems: 108.5, Housing: 118.0, Goods: 102.0, OtherServices: 107.0},
	"RI": {AllItems: 110.0, Housing: 125.0, Goods: 102.0, OtherServices: 108.0},
	"SC": {AllItems: 95.0, Housing: 94.0, Goods: 95.5, OtherServices: 96.5},
	"SD": {AllItems: 93.0, Housing: 90.0, Goods: 95.0, OtherServices: 95.5},
	"TN": {AllItems: 87.5, Housing: 81.0, Goods: 92.0, OtherServices: 90.5},
	"TX": {AllItems: 94.0, Housing: 92.0, Goods: 95.0, OtherServices: 95.5},
	"UT": {AllItems: 98.5, Housing: 101.0, Goods: 97.5, OtherServices: 99.0},
	"VT": {AllItems: 106.0, Housing: 115.0, Goods: 101.0, OtherServices: 105.0},
	"VA": {AllItems: 99.0, Housing: 104.5, Goods: 95.0, OtherServices: 99.5},
	"WA": {AllItems: 118.0, Housing: 145.0, Goods: 106.0, OtherServices: 115.0},
	"WV": {AllItems: 86.0, Housing: 78.0, Goods: 91.0, OtherServices: 89.0},
	"WI": {AllItems: 96.5, Housing: 97.0, Goods: 96.5, OtherServices: 97.5},
	"WY": {AllItems: 92.0, Housing: 88.0, Goods: 94.0, OtherServices: 94.5},
	"DC": {AllItems: 130.0, Housing: 170.0, Goods: 110.0, OtherServices: 125.0},
}

// RegionForPostalCode derives a region code from the leading digits of a
// postal code, preferring the two-digit prefix.
func RegionForPostalCode(code string) (string, bool) {
	if len(code) >= 2 {
		if region, ok := twoDigitPrefixRegions[code[:2]]; ok {
			return region, true
		}
	}
	if len(code) >= 1 {
		if region, ok := oneDigitPrefixRegions[code[:1]]; ok {
			return region, true
		}
	}
	return "", false
}

// EstimateForRegion returns the static estimate for a region, tagged with the
// upper-cased region code.
func EstimateForRegion(region string) (Record, bool) {
	key := strings.ToUpper(strings.TrimSpace(region))
	estimate, ok := regionEstimates[key]
	if !ok {
		return Record{}, false
	}
	estimate.Region = key
	return estimate, true
}
