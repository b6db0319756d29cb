package inventory

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

var msgFueraDeRango = fmt.Sprintf("fuera de rango (máximo %d dígitos enteros y %d decimales)",
	articulo.MaxDigitosEnteros, articulo.MaxDecimales)

var reSerial = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/:\-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// vacío es válido: la obligatoriedad la decide required_if
	_ = v.RegisterValidation("serial", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || reSerial.MatchString(s)
	})
	_ = v.RegisterValidation("mac_equipo", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || articulo.EsMacValida(s)
	})
	return v
}

// Submission es un ArticuloRequest ya recortado y con los números interpretados.
type Submission struct {
	Tipo           string           `json:"tipo" validate:"required,oneof=MATERIAL EQUIPO"`
	Nombre         string           `json:"nombre" validate:"required,max=200"`
	Marca          string           `json:"marca" validate:"required,max=120"`
	Modelo         string           `json:"modelo" validate:"required,max=120"`
	Unidad         string           `json:"unidad" validate:"required,max=30"`
	Serial         string           `json:"serial" validate:"required_if=Tipo EQUIPO,max=64,serial"`
	Mac            string           `json:"mac" validate:"mac_equipo"`
	Codigo         string           `json:"codigo" validate:"max=64"`
	Cantidad       decimal.Decimal  `json:"cantidad" validate:"-"`
	Costo          decimal.Decimal  `json:"costo" validate:"-"`
	Ubicacion      string           `json:"ubicacion" validate:"max=120"`
	Descripcion    string           `json:"descripcion" validate:"max=1000"`
	CantidadMinima *decimal.Decimal `json:"cantidad_minima" validate:"-"`
}

// NewSubmission recorta textos e interpreta números como lo hace el formulario:
// cantidad y costo no numéricos valen 0, cantidad_minima no numérica queda ausente.
// Un EQUIPO siempre lleva cantidad 1; un MATERIAL no lleva serial ni MAC.
func NewSubmission(in dto.ArticuloRequest) Submission {
	s := Submission{
		Tipo:           strings.ToUpper(strings.TrimSpace(in.Tipo)),
		Nombre:         strings.TrimSpace(in.Nombre),
		Marca:          strings.TrimSpace(in.Marca),
		Modelo:         strings.TrimSpace(in.Modelo),
		Unidad:         strings.TrimSpace(in.Unidad),
		Serial:         strings.TrimSpace(in.Serial),
		Mac:            strings.ToUpper(strings.TrimSpace(in.Mac)),
		Codigo:         strings.TrimSpace(in.Codigo),
		Cantidad:       articulo.NumeroOCero(string(in.Cantidad)),
		Costo:          articulo.NumeroOCero(string(in.Costo)),
		Ubicacion:      strings.TrimSpace(in.Ubicacion),
		Descripcion:    strings.TrimSpace(in.Descripcion),
		CantidadMinima: articulo.NumeroOpcional(string(in.CantidadMinima)),
	}
	switch s.Tipo {
	case entity.TipoEquipo:
		s.Cantidad = decimal.NewFromInt(1)
	case entity.TipoMaterial:
		s.Serial = ""
		s.Mac = ""
	}
	return s
}

// Clave clave de identidad de la solicitud.
func (s Submission) Clave() articulo.Clave {
	return articulo.NuevaClave(s.Tipo, s.Serial, s.Codigo, s.Nombre, s.Unidad, s.Marca, s.Modelo)
}

// Validate revisa campos obligatorios, formatos y signos. Devuelve *domain.ValidationError.
func (s Submission) Validate() error {
	fields := map[string]string{}
	if err := validate.Struct(s); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return domain.NewValidationError("datos inválidos", map[string]string{"_": err.Error()})
		}
		for _, fe := range verrs {
			fields[fe.Field()] = mensajeCampo(fe)
		}
	}
	// el rango se revisa antes que cualquier aritmética con el valor
	switch {
	case !articulo.EnRango(s.Costo):
		fields["costo"] = msgFueraDeRango
	case s.Costo.IsNegative():
		fields["costo"] = "no puede ser negativo"
	}
	switch {
	case !articulo.EnRango(s.Cantidad):
		fields["cantidad"] = msgFueraDeRango
	case s.Tipo == entity.TipoMaterial && s.Cantidad.IsNegative():
		fields["cantidad"] = "no puede ser negativa"
	}
	if s.CantidadMinima != nil {
		switch {
		case !articulo.EnRango(*s.CantidadMinima):
			fields["cantidad_minima"] = msgFueraDeRango
		case s.CantidadMinima.IsNegative():
			fields["cantidad_minima"] = "no puede ser negativa"
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationError("datos del artículo inválidos", fields)
	}
	return nil
}

func mensajeCampo(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "es obligatorio"
	case "oneof":
		return "debe ser MATERIAL o EQUIPO"
	case "max":
		return fmt.Sprintf("máximo %s caracteres", fe.Param())
	case "serial":
		return "formato de serial inválido"
	case "mac_equipo":
		return "formato de MAC inválido (XX:XX:XX:XX:XX:XX)"
	default:
		return "valor inválido"
	}
}
