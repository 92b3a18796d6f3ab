package assembler_test

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Urethramancer/sicasm/assembler"
	"github.com/Urethramancer/sicasm/catalog"
	"github.com/Urethramancer/sicasm/machine"
)

var _ = Describe("Token", func() {
	var (
		mockCtrl *gomock.Controller
		insts    *MockInstructionSet
	)

	known := func(mnemonic string, format int, opcode byte, operands int) {
		insts.EXPECT().
			Lookup(mnemonic).
			Return(catalog.Spec{Mnemonic: mnemonic, Format: format, Opcode: opcode, Operands: operands}, true).
			Times(1)
	}
	directive := func(name string) {
		insts.EXPECT().Lookup(name).Return(catalog.Spec{}, false).Times(1)
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		insts = NewMockInstructionSet(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should size and flag an immediate operand", func() {
		known("LDA", 3, 0x00, 1)

		tok, err := assembler.Parse("LOOP\tLDA\t#5", insts)

		Expect(err).NotTo(HaveOccurred())
		Expect(tok.Label).To(Equal("LOOP"))
		Expect(tok.Size).To(Equal(3))
		Expect(tok.Flags.IsImmediate()).To(BeTrue())
		Expect(tok.Flags.IsPCRelative()).To(BeFalse())
		Expect(tok.Target.Kind).To(Equal(assembler.OperandImmediate))
		Expect(tok.Target.Value).To(Equal(5))
	})

	It("should strip the extended marker before the lookup", func() {
		known("JSUB", 3, 0x48, 1)

		tok, err := assembler.Parse("CLOOP\t+JSUB\tRDREC\tREAD INPUT RECORD", insts)

		Expect(err).NotTo(HaveOccurred())
		Expect(tok.Mnemonic()).To(Equal("JSUB"))
		Expect(tok.Size).To(Equal(4))
		Expect(tok.Flags).To(Equal(machine.N | machine.I | machine.E))
		Expect(tok.Comment).To(Equal("READ INPUT RECORD"))
	})

	It("should flag indirect and indexed operands", func() {
		known("J", 3, 0x3C, 1)
		known("STCH", 3, 0x54, 1)

		ind, err := assembler.Parse("\tJ\t@RETADR", insts)
		Expect(err).NotTo(HaveOccurred())
		Expect(ind.Flags).To(Equal(machine.N | machine.P))
		Expect(ind.Target.Symbol).To(Equal("RETADR"))

		idx, err := assembler.Parse("\t+STCH\tBUFFER,X", insts)
		Expect(err).NotTo(HaveOccurred())
		Expect(idx.Operands).To(Equal([]string{"BUFFER", "X"}))
		Expect(idx.Flags.String()).To(Equal("nix--e"))
	})

	It("should treat the operand field of an operand-less instruction as comment", func() {
		known("RSUB", 3, 0x4C, 0)

		tok, err := assembler.Parse("\tRSUB\t\tRETURN TO CALLER", insts)

		Expect(err).NotTo(HaveOccurred())
		Expect(tok.Operands).To(BeEmpty())
		Expect(tok.Comment).To(Equal("RETURN TO CALLER"))
		Expect(tok.Flags).To(Equal(machine.N | machine.I))
	})

	It("should not consult the catalog for comment lines", func() {
		tok, err := assembler.Parse(".\tSUBROUTINE TO READ RECORD INTO BUFFER", insts)

		Expect(err).NotTo(HaveOccurred())
		Expect(tok.IsComment()).To(BeTrue())
		Expect(tok.Size).To(BeZero())
		Expect(tok.Comment).To(Equal("SUBROUTINE TO READ RECORD INTO BUFFER"))
	})

	It("should map format 2 register operands", func() {
		known("COMPR", 2, 0xA0, 2)

		tok, err := assembler.Parse("\tCOMPR\tA,S", insts)

		Expect(err).NotTo(HaveOccurred())
		Expect(tok.Size).To(Equal(2))
		Expect(tok.Flags).To(BeZero())
		Expect(tok.Args).To(HaveLen(2))
		Expect(tok.Args[0].Kind).To(Equal(assembler.OperandRegister))
		Expect(tok.Args[1].Value).To(Equal(machine.RegS))
	})

	It("should classify literal and expression operands", func() {
		known("LDA", 3, 0x00, 1)
		directive("WORD")

		lit, err := assembler.Parse("ENDFIL\tLDA\t=C'EOF'", insts)
		Expect(err).NotTo(HaveOccurred())
		Expect(lit.Target.Kind).To(Equal(assembler.OperandLiteral))
		Expect(lit.Target.Symbol).To(Equal("C'EOF'"))
		Expect(lit.Flags.IsSimple()).To(BeTrue())

		expr, err := assembler.Parse("MAXLEN\tWORD\tBUFEND-BUFFER", insts)
		Expect(err).NotTo(HaveOccurred())
		Expect(expr.Target.Kind).To(Equal(assembler.OperandExpr))
		Expect(expr.Target.Symbols()).To(Equal([]string{"BUFEND", "BUFFER"}))
		Expect(expr.Size).To(Equal(3))
	})

	DescribeTable("directive sizes",
		func(line, name string, size int) {
			directive(name)
			tok, err := assembler.Parse(line, insts)
			Expect(err).NotTo(HaveOccurred())
			Expect(tok.Size).To(Equal(size))
			Expect(tok.Flags).To(BeZero())
		},
		Entry("RESB", "BUFFER\tRESB\t4096", "RESB", 4096),
		Entry("RESW", "RETADR\tRESW\t1", "RESW", 3),
		Entry("BYTE hex", "INPUT\tBYTE\tX'F1'", "BYTE", 1),
		Entry("BYTE chars", "EOF\tBYTE\tC'EOF'", "BYTE", 3),
		Entry("WORD", "FIVE\tWORD\t5", "WORD", 3),
		Entry("EQU", "BUFEND\tEQU\t*", "EQU", 0),
		Entry("START", "COPY\tSTART\t0", "START", 0),
		Entry("EXTREF", "\tEXTREF\tRDREC,WRREC", "EXTREF", 0),
		Entry("unknown", "\tBASE\tLENGTH", "BASE", 0),
	)

	It("should reject malformed numbers", func() {
		directive("RESB")
		known("LDA", 3, 0x00, 1)

		_, err := assembler.Parse("BUF\tRESB\tlots", insts)
		Expect(err).To(MatchError(assembler.ErrMalformedNumber))

		_, err = assembler.Parse("\tLDA\t#12Z", insts)
		Expect(err).To(MatchError(assembler.ErrMalformedNumber))
	})
})

var _ = Describe("Assembler", func() {
	var (
		mockCtrl *gomock.Controller
		insts    *MockInstructionSet
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		insts = NewMockInstructionSet(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should look every operator up exactly once, during Pass 1", func() {
		insts.EXPECT().Lookup("START").Return(catalog.Spec{}, false).Times(1)
		insts.EXPECT().Lookup("LDA").
			Return(catalog.Spec{Mnemonic: "LDA", Format: 3, Opcode: 0x00, Operands: 1}, true).
			Times(1)
		insts.EXPECT().Lookup("END").Return(catalog.Spec{}, false).Times(1)

		prog, err := assembler.New(insts).Assemble([]string{
			"PROG\tSTART\t0",
			"LOOP\tLDA\t#5",
			"\tEND\tLOOP",
		})

		Expect(err).NotTo(HaveOccurred())
		recs := prog.Records(0)
		Expect(recs).To(HaveLen(3))
		Expect(recs[0].String()).To(Equal("HPROG 000000000003"))
		Expect(recs[1].String()).To(Equal("T00000003010005"))
		Expect(recs[2].String()).To(Equal("E000000"))
	})
})
