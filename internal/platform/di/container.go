// internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	shop "m3dshop/internal/adapters/in/http/shop"
	shopHandler "m3dshop/internal/adapters/in/http/shop/handler"
	outdb "m3dshop/internal/adapters/out/db"
	outfs "m3dshop/internal/adapters/out/firestore"
	"m3dshop/internal/adapters/out/mail"
	"m3dshop/internal/adapters/out/memory"
	"m3dshop/internal/adapters/out/payments"
	usecase "m3dshop/internal/application/usecase"
	cartdom "m3dshop/internal/domain/cart"
	"m3dshop/internal/infra/config"
	"m3dshop/internal/infra/database"
	"m3dshop/internal/platform/secrets"
)

// Container wires configuration, infrastructure, gateways, usecases and the
// HTTP handler set.
type Container struct {
	Cfg *config.Config

	DB      *database.DB
	FS      *firestore.Client
	Secrets *secrets.Provider

	RouterDeps shop.Deps
}

// New builds the whole object graph. The catalog DB is required; everything
// else degrades: no Firestore -> in-memory carts, no provider keys ->
// handlers answer with configuration errors instead of crashing at boot.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Cfg: cfg}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	c.DB = db

	sp, err := secrets.NewProvider(ctx, cfg.GCPProjectID)
	if err != nil {
		log.Printf("[di] WARN Secret Manager unavailable, env-only credentials: %v", err)
		sp = nil
	}
	c.Secrets = sp

	cartRepo := c.buildCartRepo(ctx)

	stripeKey := sp.Resolve(ctx, cfg.StripeSecretKey, "stripe-secret-key")
	paypalID := sp.Resolve(ctx, cfg.PayPalClientID, "paypal-client-id")
	paypalSecret := sp.Resolve(ctx, cfg.PayPalClientSecret, "paypal-client-secret")
	sendgridKey := sp.Resolve(ctx, cfg.SendGridAPIKey, "sendgrid-api-key")

	var stripeGW usecase.StripeGateway
	if stripeKey != "" {
		stripeGW = payments.NewStripeClient(stripeKey)
	} else {
		log.Printf("[di] WARN stripe key missing; card checkout disabled")
	}
	paypalGW := payments.NewPayPalClient(cfg.PayPalEnv, paypalID, paypalSecret)

	var mailer usecase.Mailer
	if sendgridKey != "" {
		mailer = mail.NewSendGridClient(sendgridKey, cfg.SiteName)
	} else {
		log.Printf("[di] WARN sendgrid key missing; contact form disabled")
	}

	catalogUC := usecase.NewCatalogUsecase(outdb.NewProductRepositoryPG(db.Client), cfg.PublicDir)
	cartUC := usecase.NewCartUsecase(cartRepo)
	checkoutUC := usecase.NewCheckoutUsecase(stripeGW, paypalGW, cfg.SiteName)
	captureUC := usecase.NewCaptureUsecase(paypalGW)

	var contactUC *usecase.ContactUsecase
	if mailer != nil && strings.TrimSpace(cfg.ShopContact) != "" {
		contactUC = usecase.NewContactUsecase(mailer, cfg.ShopContact, cfg.SiteName)
	}

	c.RouterDeps = shop.Deps{
		Products: shopHandler.NewProductsHandler(catalogUC),
		Cart:     shopHandler.NewCartHandler(cartUC),
		Checkout: shopHandler.NewCheckoutHandler(checkoutUC, cfg.SiteURL),
		Capture:  shopHandler.NewCaptureHandler(captureUC),
		Contact:  shopHandler.NewContactHandler(contactUC),
		Bitcoin:  shopHandler.NewBitcoinHandler(cfg.BitcoinAddress),
	}
	return c, nil
}

func (c *Container) buildCartRepo(ctx context.Context) cartdom.Repository {
	projectID := strings.TrimSpace(c.Cfg.FirestoreProjectID)
	if projectID == "" {
		log.Printf("[di] Firestore project not set; using in-memory cart store")
		return memory.NewCartRepositoryMem()
	}

	var opts []option.ClientOption
	if f := strings.TrimSpace(c.Cfg.FirestoreCredentialsFile); f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	}
	fs, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		log.Printf("[di] WARN Firestore unavailable, using in-memory cart store: %v", err)
		return memory.NewCartRepositoryMem()
	}
	c.FS = fs
	log.Printf("[di] Firestore cart store enabled project=%s", projectID)
	return outfs.NewCartRepositoryFS(fs)
}

// Close releases infrastructure handles.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.FS != nil {
		_ = c.FS.Close()
	}
	if c.Secrets != nil {
		_ = c.Secrets.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
