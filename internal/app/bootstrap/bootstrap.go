package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"rdv-soins-core/internal/infrastructure/database/mongodb"
)

// BootstrapSystem prépare l'infrastructure au démarrage : collections
// MongoDB du centre de notifications (schéma de validation + index).
// Le schéma relationnel est géré hors application (migrations/schema.sql).
type BootstrapSystem struct {
	collections *mongodb.CollectionManager
}

// NewBootstrapSystem crée une nouvelle instance du système de bootstrap
func NewBootstrapSystem(collections *mongodb.CollectionManager) *BootstrapSystem {
	return &BootstrapSystem{
		collections: collections,
	}
}

// Run exécute les étapes de bootstrap
func (b *BootstrapSystem) Run(ctx context.Context) error {
	fmt.Printf("[BOOTSTRAP] Préparation des collections MongoDB...\n")

	if err := b.collections.EnsureNotificationsCollection(ctx); err != nil {
		// MongoDB est optionnel en développement : on ne bloque pas le démarrage
		fmt.Printf("[BOOTSTRAP] ⚠️ Collections notifications non préparées: %v\n", err)
		return nil
	}

	fmt.Printf("[BOOTSTRAP] ✅ Collections MongoDB prêtes\n")
	return nil
}

// RegisterBootstrapLifecycle accroche le bootstrap au démarrage Fx
func RegisterBootstrapLifecycle(lc fx.Lifecycle, system *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			return system.Run(timeoutCtx)
		},
	})
}
