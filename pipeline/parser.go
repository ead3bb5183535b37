package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Parser turns expressions like
//
//	tic284935958 | fold 3.5248d 1327.520 | bin 0.01
//
// into an input series name and an operator chain. Periods and epochs are
// days (epoch in BTJD); bare windowed functions take Go durations.
type Parser struct {
}

func NewParser() *Parser {
	return &Parser{}
}

func trimSpace(parts []string) []string {
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func parseDays(s string) (float64, error) {
	s = strings.TrimSuffix(s, "d")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid day count")
	}
	return v, nil
}

func (p *Parser) Parse(
	s string,
	start time.Time,
) (string, Operator, error) {
	if len(s) == 0 {
		return "", nil, errors.New("empty series")
	}

	mainParts := trimSpace(strings.Split(s, "|"))

	var series string
	{
		seriesParts := trimSpace(strings.Fields(mainParts[0]))
		if len(seriesParts) != 1 {
			return "", nil, errors.New("invalid series name")
		}
		series = seriesParts[0]
	}

	switch len(mainParts) {
	case 1:
		return series, Identity{}, nil
	case 2:
		op, err := p.parseFunction(start, mainParts[1])
		return series, op, err
	default:
		op, err := p.parseChain(start, mainParts[1:])
		return series, op, err
	}
}

func (p *Parser) parseFunction(
	start time.Time,
	def string,
) (Operator, error) {
	functionParts := trimSpace(strings.Fields(def))

	if len(functionParts) == 0 {
		return nil, errors.New("invalid number of function parameters")
	}

	functionName := functionParts[0]
	switch functionName {
	case "fold":
		if len(functionParts) != 3 {
			return nil, errors.New("fold: invalid number of function parameters")
		}
		period, err := parseDays(functionParts[1])
		if err != nil {
			return nil, errors.Wrap(err, "fold period")
		}
		if period <= 0 {
			return nil, errors.New("fold: period must be positive")
		}
		epoch, err := strconv.ParseFloat(functionParts[2], 64)
		if err != nil {
			return nil, errors.Wrap(err, "fold epoch")
		}
		return OpFold{Period: period, Epoch: epoch}, nil
	case "bin":
		if len(functionParts) != 2 {
			return nil, errors.New("bin: invalid number of function parameters")
		}
		width, err := parseDays(functionParts[1])
		if err != nil {
			return nil, errors.Wrap(err, "bin width")
		}
		if width <= 0 {
			return nil, errors.New("bin: width must be positive")
		}
		return OpBin{Width: width}, nil
	case "clip":
		if len(functionParts) != 2 {
			return nil, errors.New("clip: invalid number of function parameters")
		}
		nsigma, err := strconv.ParseFloat(functionParts[1], 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid float")
		}
		if nsigma <= 0 {
			return nil, errors.New("clip: sigma must be positive")
		}
		return OpClip{NSigma: nsigma}, nil
	case "avg":
		if len(functionParts) != 2 {
			return nil, errors.New("avg: invalid number of function parameters")
		}
		duration, err := time.ParseDuration(functionParts[1])
		if err != nil {
			return nil, errors.Wrap(err, "parse duration")
		}
		return NewComputedSeries(&FcnAvg{}, duration, start), nil
	case "add":
		if len(functionParts) != 2 {
			return nil, errors.New("add: invalid number of function parameters")
		}
		x, err := strconv.ParseFloat(functionParts[1], 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid float")
		}
		return OpAdd{X: x}, nil
	case "gt":
		if len(functionParts) != 2 {
			return nil, errors.New("gt: invalid number of function parameters")
		}
		x, err := strconv.ParseFloat(functionParts[1], 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid float")
		}
		return OpGt{X: x}, nil
	default:
		return nil, errors.New("unknown function name")
	}
}

func (p *Parser) parseChain(
	start time.Time,
	defs []string,
) (Operator, error) {
	var ops []Operator

	for _, def := range defs {
		op, err := p.parseFunction(start, def)
		if err != nil {
			return nil, errors.Wrap(err, "parse function")
		}
		ops = append(ops, op)
	}

	return chain{ops: ops}, nil
}
