// seed_catalog genera un script SQL con vendedores aprobados y productos de demostración
// a partir de un catálogo XML.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalog.xml] [salida.sql]
// Por defecto lee catalog.xml del directorio actual y escribe seeds/catalog.sql en la raíz del módulo.
//
// Formato:
//
//	<catalog>
//	  <seller telegram_id="123" username="shop" first_name="Анна" company="ТОО Ромашка" tax_id="123456789012">
//	    <product name="Розы" price="1500.00" image="https://..." available="true">Описание</product>
//	  </seller>
//	</catalog>
//
// El XML puede venir en UTF-8, ISO-8859-1 o windows-1251.
package main

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Namespace de los UUID deterministas: volver a correr el seed no duplica filas.
var seedNamespace = uuid.MustParse("6f1d0c3e-4b8a-4c52-9a3e-0e7b5d2c9f41")

type catalog struct {
	Sellers []sellerEntry `xml:"seller"`
}

type sellerEntry struct {
	TelegramID string         `xml:"telegram_id,attr"`
	Username   string         `xml:"username,attr"`
	FirstName  string         `xml:"first_name,attr"`
	Company    string         `xml:"company,attr"`
	TaxID      string         `xml:"tax_id,attr"`
	Products   []productEntry `xml:"product"`
}

type productEntry struct {
	Name        string `xml:"name,attr"`
	Price       string `xml:"price,attr"`
	Image       string `xml:"image,attr"`
	Available   string `xml:"available,attr"`
	Description string `xml:",chardata"`
}

// seller ya validado.
type seller struct {
	telegramID int64
	username   string
	firstName  string
	company    string
	taxID      string
	products   []product
}

type product struct {
	name        string
	description string
	price       decimal.Decimal
	image       string
	available   bool
}

func main() {
	xmlPath := "catalog.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "seeds", "catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	sellers, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	writeSQL(w, sellers)
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	n := 0
	for _, s := range sellers {
		n += len(s.products)
	}
	fmt.Printf("Generado %s: %d vendedores, %d productos\n", outPath, len(sellers), n)
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1251", "cp1251":
		return transform.NewReader(input, charmap.Windows1251.NewDecoder()), nil
	case "utf-8", "utf8", "":
		return input, nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// parseCatalog decodifica y valida el catálogo. Los productos sin nombre se descartan.
func parseCatalog(r io.Reader) ([]seller, error) {
	var c catalog
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decodificar XML: %w", err)
	}
	if len(c.Sellers) == 0 {
		return nil, errors.New("el catálogo no tiene vendedores")
	}

	out := make([]seller, 0, len(c.Sellers))
	for i, s := range c.Sellers {
		tid, err := strconv.ParseInt(strings.TrimSpace(s.TelegramID), 10, 64)
		if err != nil || tid <= 0 {
			return nil, fmt.Errorf("vendedor %d: telegram_id inválido %q", i+1, s.TelegramID)
		}
		company := strings.TrimSpace(s.Company)
		if company == "" {
			return nil, fmt.Errorf("vendedor %d: company vacío", i+1)
		}
		sl := seller{
			telegramID: tid,
			username:   strings.TrimSpace(s.Username),
			firstName:  strings.TrimSpace(s.FirstName),
			company:    company,
			taxID:      strings.TrimSpace(s.TaxID),
		}
		for _, p := range s.Products {
			name := strings.TrimSpace(p.Name)
			if name == "" {
				continue
			}
			price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
			if err != nil || price.IsNegative() {
				return nil, fmt.Errorf("producto %q: precio inválido %q", name, p.Price)
			}
			available := true
			if v := strings.TrimSpace(p.Available); v != "" {
				if available, err = strconv.ParseBool(v); err != nil {
					return nil, fmt.Errorf("producto %q: available inválido %q", name, v)
				}
			}
			sl.products = append(sl.products, product{
				name:        name,
				description: strings.TrimSpace(p.Description),
				price:       price.Round(2),
				image:       strings.TrimSpace(p.Image),
				available:   available,
			})
		}
		out = append(out, sl)
	}
	return out, nil
}

// writeSQL escribe un script idempotente: usuario seller, solicitud aprobada y productos.
// Las filas se resuelven por telegram_id para respetar usuarios que ya hicieron /start.
func writeSQL(w io.Writer, sellers []seller) {
	fmt.Fprintln(w, "-- Vendedores y productos de demostración")
	fmt.Fprintln(w, "-- Generado por cmd/seed_catalog")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "BEGIN;")
	for _, s := range sellers {
		userID := seedID("user", strconv.FormatInt(s.telegramID, 10))
		appID := seedID("application", strconv.FormatInt(s.telegramID, 10))

		fmt.Fprintf(w, "\n-- %s\n", s.company)
		fmt.Fprintf(w, "INSERT INTO users (id, telegram_id, username, first_name, role)\n")
		fmt.Fprintf(w, "VALUES ('%s', %d, %s, %s, 'seller')\n", userID, s.telegramID, quote(s.username), quote(s.firstName))
		fmt.Fprintln(w, "ON CONFLICT (telegram_id) DO UPDATE SET role = 'seller', updated_at = NOW();")

		taxID := "NULL"
		if s.taxID != "" {
			taxID = quote(s.taxID)
		}
		fmt.Fprintln(w, "INSERT INTO seller_applications (id, user_id, company_name, tax_id, description, status, approved_at)")
		fmt.Fprintf(w, "SELECT '%s', id, %s, %s, '', 'approved', NOW() FROM users WHERE telegram_id = %d\n",
			appID, quote(s.company), taxID, s.telegramID)
		fmt.Fprintln(w, "ON CONFLICT DO NOTHING;")

		for _, p := range s.products {
			productID := seedID("product", strconv.FormatInt(s.telegramID, 10), p.name)
			fmt.Fprintln(w, "INSERT INTO products (id, seller_application_id, name, description, price, image_url, is_available)")
			fmt.Fprintf(w, "SELECT '%s', sa.id, %s, %s, %s, %s, %t\n",
				productID, quote(p.name), quote(p.description), p.price.StringFixed(2), quote(p.image), p.available)
			fmt.Fprintln(w, "FROM seller_applications sa JOIN users u ON u.id = sa.user_id")
			fmt.Fprintf(w, "WHERE u.telegram_id = %d AND sa.status = 'approved'\n", s.telegramID)
			fmt.Fprintln(w, "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,")
			fmt.Fprintln(w, "    price = EXCLUDED.price, image_url = EXCLUDED.image_url, is_available = EXCLUDED.is_available, updated_at = NOW();")
		}
	}
	fmt.Fprintln(w, "\nCOMMIT;")
}

func seedID(parts ...string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(strings.Join(parts, "|")))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
