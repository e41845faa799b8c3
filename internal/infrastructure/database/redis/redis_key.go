package redis

import (
	"fmt"
	"strings"
)

// RedisKeyGenerator génère et valide les clés Redis selon les conventions RDV Soins
type RedisKeyGenerator struct{}

// NewRedisKeyGenerator crée une nouvelle instance du générateur
func NewRedisKeyGenerator() *RedisKeyGenerator {
	return &RedisKeyGenerator{}
}

// RedisKeyPattern définit les patterns standards des clés selon les conventions
// Pattern: rdv_soins_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string // wizard, cache, etc.
	Context string // session, demandes, etc.
	TTL     int    // TTL en secondes, 0 = pas d'expiration
}

// Patterns prédéfinis. Seuls les patterns réellement implémentés sont listés ici.
var RedisKeyPatterns = map[string]RedisKeyPattern{
	// Session du formulaire multi-étapes de demande de soins
	"wizard_session": {Domain: "wizard", Context: "session", TTL: 3600},
}

// GenerateKey génère une clé selon la convention : rdv_soins_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	prefix := fmt.Sprintf("rdv_soins_%s_%s", pattern.Domain, pattern.Context)

	if len(identifier) > 0 {
		identifierStr := strings.Join(identifier, "_")
		return fmt.Sprintf("%s:%s", prefix, identifierStr), nil
	}

	// Clé singleton sans identifier
	return prefix, nil
}

// GetTTL récupère le TTL d'un pattern
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (int, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}

	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}

	if !strings.HasPrefix(key, "rdv_soins_") {
		return fmt.Errorf("clé hors convention (préfixe rdv_soins_ attendu): %s", key)
	}

	return nil
}
