package utils

import "strings"

// NormaliserTelephone ne conserve que les chiffres d'un numéro de téléphone.
// "06 12 34 56 78", "06.12.34.56.78" et "+33612345678" deviennent comparables.
func NormaliserTelephone(telephone string) string {
	var b strings.Builder
	for _, r := range telephone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TelephonesEquivalents compare deux numéros en ignorant le formatage.
// Le préfixe international +33 est ramené au 0 national avant comparaison.
func TelephonesEquivalents(a, b string) bool {
	na := normaliserPrefixe(NormaliserTelephone(a))
	nb := normaliserPrefixe(NormaliserTelephone(b))
	return na != "" && na == nb
}

func normaliserPrefixe(digits string) string {
	if strings.HasPrefix(digits, "33") && len(digits) == 11 {
		return "0" + digits[2:]
	}
	return digits
}
